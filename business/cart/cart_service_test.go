package cart

import (
	"context"
	"errors"
	"testing"

	"rajwen/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCartRepository struct {
	carts map[uint]domain.Cart
}

func newStubCartRepository() *stubCartRepository {
	return &stubCartRepository{carts: map[uint]domain.Cart{}}
}

func (s *stubCartRepository) Get(ctx context.Context, userID uint) (domain.Cart, error) {
	return s.carts[userID], nil
}

func (s *stubCartRepository) Save(ctx context.Context, userID uint, cart domain.Cart) error {
	s.carts[userID] = cart
	return nil
}

func (s *stubCartRepository) Delete(ctx context.Context, userID uint) error {
	delete(s.carts, userID)
	return nil
}

type stubFoodRepository struct {
	foods map[uint]domain.Food
}

func (s *stubFoodRepository) Create(ctx context.Context, food *domain.Food) error { return nil }

func (s *stubFoodRepository) FindByID(ctx context.Context, id uint) (domain.Food, error) {
	food, ok := s.foods[id]
	if !ok {
		return domain.Food{}, errors.New("food not found")
	}
	return food, nil
}

func (s *stubFoodRepository) FindAll(ctx context.Context) ([]domain.Food, error) { return nil, nil }

func (s *stubFoodRepository) Search(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error) {
	return nil, nil
}

func (s *stubFoodRepository) Update(ctx context.Context, food *domain.Food) error { return nil }

func (s *stubFoodRepository) Delete(ctx context.Context, id uint) error { return nil }

type stubOrderCreator struct {
	lastUserID uint
	lastOrder  domain.Order
	fail       bool
}

func (s *stubOrderCreator) CreateOrder(ctx context.Context, userID uint, data domain.Order) (domain.Order, error) {
	if s.fail {
		return domain.Order{}, errors.New("order has no items")
	}
	s.lastUserID = userID
	s.lastOrder = data
	data.ID = 1
	data.UserID = userID
	return data, nil
}

func newTestCartService() (*CartService, *stubCartRepository, *stubOrderCreator) {
	cartRepo := newStubCartRepository()
	foodRepo := &stubFoodRepository{foods: map[uint]domain.Food{
		1: {ID: 1, Name: "Dosa", Price: 80, Category: "breakfast", IsAvailable: true},
		2: {ID: 2, Name: "Idli", Price: 40, Category: "breakfast", IsAvailable: true},
		3: {ID: 3, Name: "Vada", Price: 30, Category: "breakfast", IsAvailable: false},
	}}
	creator := &stubOrderCreator{}
	return NewCartService(cartRepo, foodRepo, creator), cartRepo, creator
}

func TestAddItemSnapshotsNameAndPrice(t *testing.T) {
	svc, _, _ := newTestCartService()

	cart, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	line, ok := cart.Line(1)
	require.True(t, ok)
	assert.Equal(t, "Dosa", line.Name)
	assert.Equal(t, float64(80), line.UnitPrice)
	assert.Equal(t, 2, line.Quantity)
}

func TestAddItemMergesQuantity(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), 7, 1, 3)
	require.NoError(t, err)

	line, _ := cart.Line(1)
	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, cart.Lines, 1)
}

func TestAddItemRejections(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), 7, 1, 0)
	assert.Error(t, err)

	_, err = svc.AddItem(context.Background(), 7, 42, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.AddItem(context.Background(), 7, 3, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestUpdateItem(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateItem(context.Background(), 7, 1, 4)
	require.NoError(t, err)
	line, _ := cart.Line(1)
	assert.Equal(t, 4, line.Quantity)

	// zero quantity removes the line
	cart, err = svc.UpdateItem(context.Background(), 7, 1, 0)
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	_, err = svc.UpdateItem(context.Background(), 7, 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in cart")
}

func TestRemoveItem(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	_, err = svc.RemoveItem(context.Background(), 7, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in cart")
}

func TestCheckout(t *testing.T) {
	svc, cartRepo, creator := newTestCartService()

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 7, 2, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), 7, "12 MG Road", "9876543210")
	require.NoError(t, err)

	assert.Equal(t, uint(7), creator.lastUserID)
	assert.Equal(t, "12 MG Road", creator.lastOrder.DeliveryAddress)
	assert.Equal(t, float64(200), creator.lastOrder.TotalAmount)
	require.Len(t, order.Items, 2)

	// cart is emptied once the order is placed
	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.Empty(t, cartRepo.carts)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.Checkout(context.Background(), 7, "12 MG Road", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	svc, cartRepo, creator := newTestCartService()
	creator.fail = true

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), 7, "12 MG Road", "")
	require.Error(t, err)

	assert.False(t, cartRepo.carts[7].Empty())
}

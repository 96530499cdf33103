package orders

import (
	"context"
	"errors"
	"testing"

	"rajwen/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrdersRepository struct {
	orders map[uint]domain.Order
	nextID uint
}

func newStubOrdersRepository() *stubOrdersRepository {
	return &stubOrdersRepository{orders: map[uint]domain.Order{}, nextID: 1}
}

func (s *stubOrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = *order
	return nil
}

func (s *stubOrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return order, nil
}

func (s *stubOrdersRepository) FindByIDExpanded(ctx context.Context, id uint) (domain.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *stubOrdersRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *stubOrdersRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range s.orders {
		result = append(result, order)
	}
	return result, nil
}

func (s *stubOrdersRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	order, ok := s.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	order.Status = status
	s.orders[id] = order
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

type stubUserRepository struct{}

func (s *stubUserRepository) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	return domain.User{ID: id, Name: "Asha", Email: "asha@example.com"}, nil
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, errors.New("user not found")
}

func (s *stubUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return nil
}

type recordingPublisher struct {
	routingKeys []string
	payloads    []any
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	p.payloads = append(p.payloads, data)
	return nil
}

func newTestService(orderRepo *stubOrdersRepository, events EventsPublisher) *OrdersService {
	foodRepo := &stubFoodRepository{foods: map[uint]domain.Food{
		1: {ID: 1, Name: "Dosa", Price: 80, Category: "breakfast", IsAvailable: true},
		2: {ID: 2, Name: "Idli", Price: 40, Category: "breakfast", IsAvailable: true},
	}}
	return NewOrdersService(orderRepo, foodRepo, &stubUserRepository{}, events, nil)
}

func validOrder() domain.Order {
	return domain.Order{
		Items: []domain.OrderItem{
			{FoodID: 1, Quantity: 2, UnitPrice: 80},
			{FoodID: 2, Quantity: 1, UnitPrice: 40},
		},
		TotalAmount:     200,
		DeliveryAddress: "12 MG Road",
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newStubOrdersRepository()
	events := &recordingPublisher{}
	svc := newTestService(repo, events)

	data := validOrder()
	data.UserID = 999 // must be overwritten by the authenticated identity

	order, err := svc.CreateOrder(context.Background(), 7, data)
	require.NoError(t, err)

	assert.Equal(t, uint(7), order.UserID)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.NotZero(t, order.ID)

	require.Len(t, events.routingKeys, 1)
	assert.Equal(t, domain.EventOrderCreated, events.routingKeys[0])
}

func TestCreateOrderKeepsSubmittedTotal(t *testing.T) {
	repo := newStubOrdersRepository()
	svc := newTestService(repo, nil)

	// items sum to 100 but the submitted total wins
	data := domain.Order{
		Items:           []domain.OrderItem{{FoodID: 1, Quantity: 2, UnitPrice: 50}},
		TotalAmount:     999,
		DeliveryAddress: "12 MG Road",
	}

	order, err := svc.CreateOrder(context.Background(), 7, data)
	require.NoError(t, err)
	assert.Equal(t, float64(999), order.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := newTestService(newStubOrdersRepository(), nil)

	tests := []struct {
		name    string
		mutate  func(*domain.Order)
		message string
	}{
		{"no items", func(o *domain.Order) { o.Items = nil }, "order has no items"},
		{"no address", func(o *domain.Order) { o.DeliveryAddress = "" }, "delivery address is required"},
		{"zero quantity", func(o *domain.Order) { o.Items[0].Quantity = 0 }, "item quantity must be at least 1"},
		{"negative price", func(o *domain.Order) { o.Items[0].UnitPrice = -1 }, "item price cannot be negative"},
		{"unknown food", func(o *domain.Order) { o.Items[0].FoodID = 42 }, "food not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validOrder()
			tt.mutate(&data)

			_, err := svc.CreateOrder(context.Background(), 7, data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestGetOrderOwnership(t *testing.T) {
	repo := newStubOrdersRepository()
	svc := newTestService(repo, nil)

	created, err := svc.CreateOrder(context.Background(), 7, validOrder())
	require.NoError(t, err)

	// owner sees it
	order, err := svc.GetOrder(context.Background(), created.ID, 7, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, created.ID, order.ID)

	// another user does not
	_, err = svc.GetOrder(context.Background(), created.ID, 8, domain.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	// admin sees anything
	_, err = svc.GetOrder(context.Background(), created.ID, 8, domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestGetMyOrders(t *testing.T) {
	repo := newStubOrdersRepository()
	svc := newTestService(repo, nil)

	_, err := svc.CreateOrder(context.Background(), 7, validOrder())
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), 8, validOrder())
	require.NoError(t, err)

	mine, err := svc.GetMyOrders(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(7), mine[0].UserID)
}

func TestUpdateStatus(t *testing.T) {
	repo := newStubOrdersRepository()
	events := &recordingPublisher{}
	svc := newTestService(repo, events)

	created, err := svc.CreateOrder(context.Background(), 7, validOrder())
	require.NoError(t, err)

	order, err := svc.UpdateStatus(context.Background(), created.ID, domain.OrderConfirmed, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, order.Status)

	// order.created plus order.status_changed
	require.Len(t, events.routingKeys, 2)
	assert.Equal(t, domain.EventOrderStatusChanged, events.routingKeys[1])
}

func TestUpdateStatusOverwritesOutsideTheFlow(t *testing.T) {
	repo := newStubOrdersRepository()
	svc := newTestService(repo, nil)

	created, err := svc.CreateOrder(context.Background(), 7, validOrder())
	require.NoError(t, err)

	// jump straight past the whole flow, then walk it backwards
	order, err := svc.UpdateStatus(context.Background(), created.ID, domain.OrderDelivered, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, order.Status)

	order, err = svc.UpdateStatus(context.Background(), created.ID, domain.OrderPending, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newStubOrdersRepository()
	svc := newTestService(repo, nil)

	created, err := svc.CreateOrder(context.Background(), 7, validOrder())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "shipped", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc := newTestService(newStubOrdersRepository(), nil)

	_, err := svc.UpdateStatus(context.Background(), 42, domain.OrderConfirmed, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

package cart

import (
	"context"
	"errors"

	"rajwen/business/food"
	"rajwen/domain"
	"rajwen/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	Get(ctx context.Context, userID uint) (domain.Cart, error)
	Save(ctx context.Context, userID uint, cart domain.Cart) error
	Delete(ctx context.Context, userID uint) error
}

// OrderCreator contract interface
type OrderCreator interface {
	CreateOrder(ctx context.Context, userID uint, data domain.Order) (domain.Order, error)
}

type CartService struct {
	cartRepo CartRepository
	foodRepo food.FoodRepository
	orders   OrderCreator
}

func NewCartService(cartRepo CartRepository, foodRepo food.FoodRepository, orders OrderCreator) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		foodRepo: foodRepo,
		orders:   orders,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

// AddItem snapshots the food's current name and price into the cart line.
func (s *CartService) AddItem(ctx context.Context, userID, foodID uint, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		logger.Error("Invalid cart quantity")
		return domain.Cart{}, errors.New("quantity must be at least 1")
	}

	item, err := s.foodRepo.FindByID(ctx, foodID)
	if err != nil {
		logger.Error("Cart add references unknown food", err)
		return domain.Cart{}, err
	}

	if !item.IsAvailable {
		logger.Error("Cart add references unavailable food", "food_id", foodID)
		return domain.Cart{}, errors.New("food is not available")
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return domain.Cart{}, err
	}

	cart = cart.Add(domain.CartLine{
		FoodID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
	})

	if err := s.cartRepo.Save(ctx, userID, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, foodID uint, quantity int) (domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return domain.Cart{}, err
	}

	if _, ok := cart.Line(foodID); !ok {
		return domain.Cart{}, errors.New("item not found in cart")
	}

	cart = cart.UpdateQuantity(foodID, quantity)

	if err := s.cartRepo.Save(ctx, userID, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, foodID uint) (domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return domain.Cart{}, err
	}

	if _, ok := cart.Line(foodID); !ok {
		return domain.Cart{}, errors.New("item not found in cart")
	}

	cart = cart.Remove(foodID)

	if err := s.cartRepo.Save(ctx, userID, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		logger.Error("Failed to clear cart", err)
		return err
	}

	return nil
}

// Checkout turns the cart into an order. Line prices are the snapshots taken
// at add time; the total is derived from them on read.
func (s *CartService) Checkout(ctx context.Context, userID uint, deliveryAddress, contactNumber string) (domain.Order, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return domain.Order{}, err
	}

	if cart.Empty() {
		return domain.Order{}, errors.New("cart is empty")
	}

	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, domain.OrderItem{
			FoodID:    line.FoodID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order := domain.Order{
		Items:           items,
		TotalAmount:     cart.Total(),
		DeliveryAddress: deliveryAddress,
		ContactNumber:   contactNumber,
	}

	created, err := s.orders.CreateOrder(ctx, userID, order)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		logger.Warn("Failed to clear cart after checkout", err)
	}

	return created, nil
}

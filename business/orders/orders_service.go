package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rajwen/business/food"
	"rajwen/business/user"
	"rajwen/domain"
	"rajwen/pkg/logger"
	"rajwen/pkg/metrics"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByIDExpanded(ctx context.Context, id uint) (domain.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// EventsPublisher contract interface; nil disables event publishing.
type EventsPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// ErrForbidden is returned when an actor reaches for an order that is not
// theirs.
var ErrForbidden = errors.New("forbidden")

const (
	SubjectOrderConfirmation   = "Your Rajwen Order Is In!"
	EmailBodyOrderConfirmation = `Hello %v, we received your order #%d totalling %.2f. We will keep you posted as it moves along.`
)

type OrdersService struct {
	orderRepo OrdersRepository
	foodRepo  food.FoodRepository
	userRepo  user.UserRepository
	events    EventsPublisher
	notifRepo user.NotificationRepository
}

func NewOrdersService(
	orderRepo OrdersRepository,
	foodRepo food.FoodRepository,
	userRepo user.UserRepository,
	events EventsPublisher,
	notifRepo user.NotificationRepository,
) *OrdersService {
	return &OrdersService{
		orderRepo: orderRepo,
		foodRepo:  foodRepo,
		userRepo:  userRepo,
		events:    events,
		notifRepo: notifRepo,
	}
}

// CreateOrder persists a new order for the authenticated actor. The owner is
// always the authenticated identity; any user id in the payload is ignored.
// The total amount is stored exactly as submitted and is not recomputed from
// the line items here.
func (s *OrdersService) CreateOrder(ctx context.Context, userID uint, data domain.Order) (domain.Order, error) {
	if len(data.Items) == 0 {
		logger.Error("Order has no items")
		return domain.Order{}, errors.New("order has no items")
	}

	if data.DeliveryAddress == "" {
		logger.Error("Order has no delivery address")
		return domain.Order{}, errors.New("delivery address is required")
	}

	for _, item := range data.Items {
		if item.Quantity < 1 {
			logger.Error("Invalid order item quantity")
			return domain.Order{}, errors.New("item quantity must be at least 1")
		}
		if item.UnitPrice < 0 {
			logger.Error("Invalid order item price")
			return domain.Order{}, errors.New("item price cannot be negative")
		}
		if _, err := s.foodRepo.FindByID(ctx, item.FoodID); err != nil {
			logger.Error("Order references unknown food", err)
			return domain.Order{}, err
		}
	}

	data.UserID = userID
	data.Status = domain.OrderPending
	data.CreatedAt = time.Now()
	data.UpdatedAt = time.Now()

	if err := s.orderRepo.CreateOrder(ctx, &data); err != nil {
		logger.Error("Failed to create order", err)
		return domain.Order{}, err
	}

	metrics.OrdersCreatedTotal.Inc()

	s.publish(ctx, domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:     data.ID,
		UserID:      data.UserID,
		TotalAmount: data.TotalAmount,
		Status:      data.Status,
		CreatedAt:   data.CreatedAt,
	})
	s.sendConfirmation(ctx, data)

	return data, nil
}

// GetOrder enforces the visibility rule: admins see any order with items
// expanded against the current catalog, everyone else only their own.
func (s *OrdersService) GetOrder(ctx context.Context, orderID, actorID uint, actorRole string) (domain.Order, error) {
	if actorRole == domain.RoleAdmin {
		return s.orderRepo.FindByIDExpanded(ctx, orderID)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != actorID {
		logger.Warn("Order access denied", "order_id", orderID, "actor_id", actorID)
		return domain.Order{}, ErrForbidden
	}

	return order, nil
}

func (s *OrdersService) GetMyOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to get orders for user", err)
		return nil, err
	}

	return orders, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return nil, err
	}

	return orders, nil
}

// UpdateStatus overwrites the order status with the requested target after
// checking it is a known status. A target outside the normal flow is logged
// but still applied.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID uint, target string, changedBy uint) (domain.Order, error) {
	if !domain.KnownOrderStatus(target) {
		logger.Error("Unknown order status", "status", target)
		return domain.Order{}, errors.New("invalid order status")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("Order not found for status update", err)
		return domain.Order{}, err
	}

	if !domain.CanTransitionOrder(order.Status, target) {
		logger.Warn("Order status overwritten outside the normal flow",
			"order_id", orderID, "from", order.Status, "to", target, "changed_by", changedBy)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		logger.Error("Failed to update order status", err)
		return domain.Order{}, err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(target).Inc()

	s.publish(ctx, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:    orderID,
		FromStatus: order.Status,
		ToStatus:   target,
		ChangedBy:  changedBy,
		ChangedAt:  time.Now(),
	})

	order.Status = target
	return order, nil
}

func (s *OrdersService) publish(ctx context.Context, routingKey string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, data); err != nil {
		logger.Warn("Failed to publish order event", err)
	}
}

func (s *OrdersService) sendConfirmation(ctx context.Context, order domain.Order) {
	if s.notifRepo == nil {
		return
	}

	owner, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Failed to load order owner for confirmation email", err)
		return
	}

	body := fmt.Sprintf(EmailBodyOrderConfirmation, owner.Name, order.ID, order.TotalAmount)
	if err := s.notifRepo.SendEmail(owner.Name, owner.Email, SubjectOrderConfirmation, body); err != nil {
		logger.Warn("Failed to send order confirmation email", err)
	}
}

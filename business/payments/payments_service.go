package payments

import (
	"context"
	"errors"
	"strconv"

	"rajwen/business/orders"
	"rajwen/domain"
	"rajwen/pkg/logger"
	"rajwen/pkg/metrics"

	"github.com/google/uuid"
)

// PaymentsRepository contract interface
type PaymentsRepository interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id uint) (domain.Payment, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Payment, error)
}

// GatewayRepository contract interface
type GatewayRepository interface {
	CreateGatewayOrder(ctx context.Context, amount float64, receipt string, notes map[string]string) (domain.RazorpayOrder, error)
}

type PaymentsService struct {
	paymentRepo PaymentsRepository
	gatewayRepo GatewayRepository
	orderRepo   orders.OrdersRepository
}

func NewPaymentsService(
	paymentRepo PaymentsRepository,
	gatewayRepo GatewayRepository,
	orderRepo orders.OrdersRepository,
) *PaymentsService {
	return &PaymentsService{
		paymentRepo: paymentRepo,
		gatewayRepo: gatewayRepo,
		orderRepo:   orderRepo,
	}
}

// CreatePaymentIntent opens a gateway order for the order total and persists
// a pending payment row tied to it.
func (s *PaymentsService) CreatePaymentIntent(ctx context.Context, userID, orderID uint) (domain.PaymentIntent, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("Order not found for payment intent", err)
		return domain.PaymentIntent{}, err
	}

	if order.UserID != userID {
		logger.Warn("Payment intent denied for foreign order", "order_id", orderID, "actor_id", userID)
		return domain.PaymentIntent{}, orders.ErrForbidden
	}

	receipt := uuid.NewString()
	notes := map[string]string{
		"order_id": strconv.FormatUint(uint64(orderID), 10),
		"user_id":  strconv.FormatUint(uint64(userID), 10),
	}

	gatewayOrder, err := s.gatewayRepo.CreateGatewayOrder(ctx, order.TotalAmount, receipt, notes)
	if err != nil {
		logger.Error("Failed to create gateway order", err)
		return domain.PaymentIntent{}, errors.New("failed to create payment intent")
	}

	payment := domain.Payment{
		OrderID:        orderID,
		UserID:         userID,
		Amount:         order.TotalAmount,
		Method:         domain.PaymentMethodCard,
		Status:         domain.PaymentPending,
		GatewayOrderID: gatewayOrder.ID,
		Receipt:        receipt,
	}
	if err := s.paymentRepo.CreatePayment(ctx, &payment); err != nil {
		logger.Error("Failed to persist payment", err)
		return domain.PaymentIntent{}, err
	}

	return domain.PaymentIntent{
		Payment:        payment,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
	}, nil
}

// RecordPayment persists a payment exactly as submitted by the client. The
// amount and status are NOT reconciled against the gateway's record.
func (s *PaymentsService) RecordPayment(ctx context.Context, userID uint, data domain.Payment) (domain.Payment, error) {
	order, err := s.orderRepo.FindByID(ctx, data.OrderID)
	if err != nil {
		logger.Error("Order not found for payment record", err)
		return domain.Payment{}, err
	}

	if order.UserID != userID {
		logger.Warn("Payment record denied for foreign order", "order_id", data.OrderID, "actor_id", userID)
		return domain.Payment{}, orders.ErrForbidden
	}

	data.UserID = userID
	if data.Status == "" {
		data.Status = domain.PaymentCompleted
	}

	logger.Warn("Recording payment without gateway verification",
		"order_id", data.OrderID, "amount", data.Amount, "status", data.Status)

	if err := s.paymentRepo.CreatePayment(ctx, &data); err != nil {
		logger.Error("Failed to record payment", err)
		return domain.Payment{}, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(data.Status).Inc()

	return data, nil
}

func (s *PaymentsService) GetMyPayments(ctx context.Context, userID uint) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to get payments for user", err)
		return nil, err
	}

	return payments, nil
}

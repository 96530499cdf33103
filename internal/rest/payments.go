package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"rajwen/business/orders"
	"rajwen/domain"
	"rajwen/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PaymentsHandler struct {
		validate        *validator.Validate
		paymentsService PaymentsService
		timeout         time.Duration
	}

	PaymentsService interface {
		CreatePaymentIntent(ctx context.Context, userID, orderID uint) (domain.PaymentIntent, error)
		RecordPayment(ctx context.Context, userID uint, data domain.Payment) (domain.Payment, error)
		GetMyPayments(ctx context.Context, userID uint) ([]domain.Payment, error)
	}

	CreatePaymentIntentInput struct {
		OrderID uint `json:"orderId" validate:"required"`
	}

	RecordPaymentInput struct {
		OrderID       uint    `json:"orderId" validate:"required"`
		Amount        float64 `json:"amount" validate:"gte=0"`
		Method        string  `json:"method" validate:"required,oneof=card cash upi"`
		Status        string  `json:"status" validate:"omitempty,oneof=pending completed failed"`
		TransactionID string  `json:"transactionId"`
	}
)

func NewPaymentsHandler(paymentsService PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{
		validate:        validator.New(),
		paymentsService: paymentsService,
		timeout:         10 * time.Second,
	}
}

func (h *PaymentsHandler) CreatePaymentIntent(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CreatePaymentIntentInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate payment intent request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	intent, err := h.paymentsService.CreatePaymentIntent(ctx, userID, request.OrderID)
	if err != nil {
		if errors.Is(err, orders.ErrForbidden) {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create payment intent", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(intent))
}

func (h *PaymentsHandler) RecordPayment(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request RecordPaymentInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate payment record request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payment, err := h.paymentsService.RecordPayment(ctx, userID, domain.Payment{
		OrderID:       request.OrderID,
		Amount:        request.Amount,
		Method:        request.Method,
		Status:        request.Status,
		TransactionID: request.TransactionID,
	})
	if err != nil {
		if errors.Is(err, orders.ErrForbidden) {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to record payment", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(payment))
}

func (h *PaymentsHandler) GetMyPayments(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	payments, err := h.paymentsService.GetMyPayments(ctx, userID)
	if err != nil {
		logger.Error("Failed to get my payments", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(payments))
}

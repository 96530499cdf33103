package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
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
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, userID uint, data domain.Order) (domain.Order, error)
		GetOrder(ctx context.Context, orderID, actorID uint, actorRole string) (domain.Order, error)
		GetMyOrders(ctx context.Context, userID uint) ([]domain.Order, error)
		GetAllOrders(ctx context.Context) ([]domain.Order, error)
		UpdateStatus(ctx context.Context, orderID uint, target string, changedBy uint) (domain.Order, error)
	}

	OrderItemInput struct {
		FoodID    uint    `json:"foodId" validate:"required"`
		Quantity  int     `json:"quantity" validate:"required,min=1"`
		UnitPrice float64 `json:"price" validate:"gte=0"`
	}

	CreateOrderInput struct {
		Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
		TotalAmount     float64          `json:"totalAmount" validate:"gte=0"`
		DeliveryAddress string           `json:"deliveryAddress" validate:"required"`
		ContactNumber   string           `json:"contactNumber"`
	}

	UpdateOrderStatusInput struct {
		Status string `json:"status" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CreateOrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate create order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items := make([]domain.OrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, domain.OrderItem{
			FoodID:    item.FoodID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, userID, domain.Order{
		Items:           items,
		TotalAmount:     request.TotalAmount,
		DeliveryAddress: request.DeliveryAddress,
		ContactNumber:   request.ContactNumber,
	})
	if err != nil {
		logger.Error("Failed to create order", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	myOrders, err := h.ordersService.GetMyOrders(ctx, userID)
	if err != nil {
		logger.Error("Failed to get my orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(myOrders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	idStr := c.Param("id")
	orderID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	userID := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(orderID), userID, role)
	if err != nil {
		if errors.Is(err, orders.ErrForbidden) {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get order by id", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	allOrders, err := h.ordersService.GetAllOrders(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(allOrders))
}

func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	idStr := c.Param("id")
	orderID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var request UpdateOrderStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status update request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, uint(orderID), request.Status, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update order status", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

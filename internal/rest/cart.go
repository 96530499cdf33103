package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rajwen/domain"
	"rajwen/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CartHandler struct {
		validate    *validator.Validate
		cartService CartService
		timeout     time.Duration
	}

	CartService interface {
		GetCart(ctx context.Context, userID uint) (domain.Cart, error)
		AddItem(ctx context.Context, userID, foodID uint, quantity int) (domain.Cart, error)
		UpdateItem(ctx context.Context, userID, foodID uint, quantity int) (domain.Cart, error)
		RemoveItem(ctx context.Context, userID, foodID uint) (domain.Cart, error)
		ClearCart(ctx context.Context, userID uint) error
		Checkout(ctx context.Context, userID uint, deliveryAddress, contactNumber string) (domain.Order, error)
	}

	AddCartItemInput struct {
		FoodID   uint `json:"foodId" validate:"required"`
		Quantity int  `json:"quantity" validate:"required,min=1"`
	}

	UpdateCartItemInput struct {
		Quantity int `json:"quantity" validate:"required"`
	}

	CheckoutInput struct {
		DeliveryAddress string `json:"deliveryAddress" validate:"required"`
		ContactNumber   string `json:"contactNumber"`
	}
)

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		validate:    validator.New(),
		cartService: cartService,
		timeout:     10 * time.Second,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		logger.Error("Failed to get cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request AddCartItemInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart add request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.AddItem(ctx, userID, request.FoodID, request.Quantity)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to add cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	foodIdStr := c.Param("foodId")
	foodId, err := strconv.ParseUint(foodIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid food id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid food id"})
	}

	var request UpdateCartItemInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate cart update request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.UpdateItem(ctx, userID, uint(foodId), request.Quantity)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	foodIdStr := c.Param("foodId")
	foodId, err := strconv.ParseUint(foodIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid food id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid food id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.RemoveItem(ctx, userID, uint(foodId))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to remove cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, userID); err != nil {
		logger.Error("Failed to clear cart", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart cleared successfully"))
}

func (h *CartHandler) Checkout(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var request CheckoutInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.cartService.Checkout(ctx, userID, request.DeliveryAddress, request.ContactNumber)
	if err != nil {
		logger.Error("Failed to checkout cart", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

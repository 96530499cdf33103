package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rajwen/domain"
	"rajwen/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type FoodService interface {
	GetAllFoods(ctx context.Context) ([]domain.Food, error)
	GetFoodByID(ctx context.Context, id uint) (domain.Food, error)
	SearchFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error)
	CreateFood(ctx context.Context, food *domain.Food) (*domain.Food, error)
	UpdateFood(ctx context.Context, food *domain.Food) (*domain.Food, error)
	DeleteFood(ctx context.Context, id uint) error
}

type FoodHandler struct {
	foodService FoodService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewFoodHandler(foodService FoodService) *FoodHandler {
	return &FoodHandler{
		foodService: foodService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateFoodRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

type UpdateFoodRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (h *FoodHandler) GetAllFoods(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	foods, err := h.foodService.GetAllFoods(ctx)
	if err != nil {
		logger.Error("Failed to find all foods", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all foods",
		"foods":   foods,
	})
}

func (h *FoodHandler) GetFoodByID(c echo.Context) error {
	foodIdStr := c.Param("id")

	foodId, err := strconv.ParseUint(foodIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid food id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	food, err := h.foodService.GetFoodByID(ctx, uint(foodId))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find food by id",
		"food":    food,
	})
}

// SearchFoods composes the filter from query params. Absent params are left
// at their zero value and not applied.
func (h *FoodHandler) SearchFoods(c echo.Context) error {
	filter := domain.FoodFilter{
		Query:    c.QueryParam("query"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logger.Error("Invalid minPrice", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid minPrice"})
		}
		filter.MinPrice = &minPrice
	}

	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logger.Error("Invalid maxPrice", err)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid maxPrice"})
		}
		filter.MaxPrice = &maxPrice
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	foods, err := h.foodService.SearchFoods(ctx, filter)
	if err != nil {
		if strings.Contains(err.Error(), "cannot exceed") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to search foods", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully search foods",
		"foods":   foods,
	})
}

func (h *FoodHandler) CreateFood(c echo.Context) error {
	var req CreateFoodRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate food request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	food, err := h.foodService.CreateFood(ctx, &domain.Food{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: isAvailable,
	})
	if err != nil {
		logger.Error("Failed to create food", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "successfully create food",
		"food":    food,
	})
}

func (h *FoodHandler) UpdateFood(c echo.Context) error {
	foodIdStr := c.Param("id")

	foodId, err := strconv.ParseUint(foodIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid food id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateFoodRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate food request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	food, err := h.foodService.UpdateFood(ctx, &domain.Food{
		ID:          uint(foodId),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: isAvailable,
	})
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update food", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update food",
		"food":    food,
	})
}

func (h *FoodHandler) DeleteFood(c echo.Context) error {
	foodIdStr := c.Param("id")

	foodId, err := strconv.ParseUint(foodIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid food id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.foodService.DeleteFood(ctx, uint(foodId)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to delete food", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully delete food",
	})
}

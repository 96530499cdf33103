package food

import (
	"context"
	"errors"
	"fmt"

	"rajwen/domain"
	"rajwen/pkg/logger"
)

// FoodRepository contract interface
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) error
	FindByID(ctx context.Context, id uint) (domain.Food, error)
	FindAll(ctx context.Context) ([]domain.Food, error)
	Search(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id uint) error
}

type foodService struct {
	foodRepo FoodRepository
}

func NewFoodService(foodRepo FoodRepository) *foodService {
	return &foodService{
		foodRepo: foodRepo,
	}
}

func (s *foodService) GetAllFoods(ctx context.Context) ([]domain.Food, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all foods")
		return nil, fmt.Errorf("context error: %w", err)
	}

	foods, err := s.foodRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all foods", err)
		return nil, err
	}

	return foods, nil
}

func (s *foodService) GetFoodByID(ctx context.Context, id uint) (domain.Food, error) {
	if id == 0 {
		logger.Error("invalid food id")
		return domain.Food{}, errors.New("invalid food id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get food by id")
		return domain.Food{}, fmt.Errorf("context error: %w", err)
	}

	food, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find food by id", err)
		return domain.Food{}, err
	}

	return food, nil
}

// SearchFoods hands the composed filter to the repository. Fields left at
// their zero value are simply not applied.
func (s *foodService) SearchFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching foods")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		logger.Error("Invalid price range in food search")
		return nil, errors.New("minPrice cannot exceed maxPrice")
	}

	foods, err := s.foodRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("Failed to search foods", err)
		return nil, err
	}

	return foods, nil
}

func (s *foodService) CreateFood(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create food")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if food.Name == "" {
		logger.Error("Invalid food data: name is required")
		return nil, errors.New("food name is required")
	}

	if food.Category == "" {
		logger.Error("Invalid food data: category is required")
		return nil, errors.New("food category is required")
	}

	if food.Price < 0 {
		logger.Error("Invalid food data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if err := s.foodRepo.Create(ctx, food); err != nil {
		logger.Error("failed to create new food", err)
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	logger.Info("food created successfully")

	return food, nil
}

func (s *foodService) UpdateFood(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating food")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if food.ID == 0 {
		logger.Error("Invalid food data: ID is required")
		return nil, errors.New("food ID is required")
	}

	if food.Name == "" {
		logger.Error("Invalid food data: name is required")
		return nil, errors.New("food name is required")
	}

	if food.Price < 0 {
		logger.Error("Invalid food data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if _, err := s.foodRepo.FindByID(ctx, food.ID); err != nil {
		logger.Error("food not found", err)
		return nil, errors.New("food not found")
	}

	if err := s.foodRepo.Update(ctx, food); err != nil {
		logger.Error("failed to update food", err)
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	updatedFood, err := s.foodRepo.FindByID(ctx, food.ID)
	if err != nil {
		logger.Error("failed to fetch updated food", err)
		return nil, fmt.Errorf("failed to fetch updated food: %w", err)
	}

	return &updatedFood, nil
}

func (s *foodService) DeleteFood(ctx context.Context, id uint) error {
	if id == 0 {
		logger.Error("Invalid food id when deleting food")
		return errors.New("invalid food id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting food")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.foodRepo.FindByID(ctx, id); err != nil {
		logger.Error("food not found", err)
		return errors.New("food not found")
	}

	if err := s.foodRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete food", err)
		return fmt.Errorf("failed to delete food: %w", err)
	}

	return nil
}

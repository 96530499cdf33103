package postgres

import (
	"context"
	"errors"
	"fmt"

	"rajwen/domain"

	"gorm.io/gorm"
)

type FoodRepository struct {
	DB *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{
		DB: db,
	}
}

func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) error {
	if err := r.DB.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}

	return nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id uint) (domain.Food, error) {
	var food domain.Food

	err := r.DB.WithContext(ctx).First(&food, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Food{}, errors.New("food not found")
		}
		return domain.Food{}, fmt.Errorf("failed to find food: %w", err)
	}

	return food, nil
}

func (r *FoodRepository) FindAll(ctx context.Context) ([]domain.Food, error) {
	var foods []domain.Food

	if err := r.DB.WithContext(ctx).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to find foods: %w", err)
	}

	return foods, nil
}

// Search composes a single query out of the optional filter fields. All set
// fields are conjunctive; an empty filter returns the full catalog.
func (r *FoodRepository) Search(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Food{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var foods []domain.Food
	if err := query.Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}

	return foods, nil
}

func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	var existing domain.Food
	if err := r.DB.WithContext(ctx).First(&existing, food.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("food not found")
		}
		return fmt.Errorf("failed to find food: %w", err)
	}

	updateData := map[string]interface{}{
		"name":         food.Name,
		"description":  food.Description,
		"price":        food.Price,
		"category":     food.Category,
		"image_url":    food.ImageURL,
		"is_available": food.IsAvailable,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Food{}).Where("id = ?", food.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update food: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("food not found or already deleted")
	}

	return nil
}

func (r *FoodRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Food{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete food: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("food not found or already deleted")
	}

	return nil
}

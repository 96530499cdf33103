package food

import (
	"context"
	"errors"
	"testing"

	"rajwen/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFoodRepository struct {
	foods      map[uint]domain.Food
	nextID     uint
	lastFilter domain.FoodFilter
}

func newStubFoodRepository() *stubFoodRepository {
	return &stubFoodRepository{foods: map[uint]domain.Food{}, nextID: 1}
}

func (s *stubFoodRepository) Create(ctx context.Context, food *domain.Food) error {
	food.ID = s.nextID
	s.nextID++
	s.foods[food.ID] = *food
	return nil
}

func (s *stubFoodRepository) FindByID(ctx context.Context, id uint) (domain.Food, error) {
	food, ok := s.foods[id]
	if !ok {
		return domain.Food{}, errors.New("food not found")
	}
	return food, nil
}

func (s *stubFoodRepository) FindAll(ctx context.Context) ([]domain.Food, error) {
	var result []domain.Food
	for _, food := range s.foods {
		result = append(result, food)
	}
	return result, nil
}

func (s *stubFoodRepository) Search(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error) {
	s.lastFilter = filter
	return nil, nil
}

func (s *stubFoodRepository) Update(ctx context.Context, food *domain.Food) error {
	if _, ok := s.foods[food.ID]; !ok {
		return errors.New("food not found")
	}
	s.foods[food.ID] = *food
	return nil
}

func (s *stubFoodRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := s.foods[id]; !ok {
		return errors.New("food not found")
	}
	delete(s.foods, id)
	return nil
}

func TestCreateFood(t *testing.T) {
	repo := newStubFoodRepository()
	svc := NewFoodService(repo)

	food, err := svc.CreateFood(context.Background(), &domain.Food{
		Name: "Dosa", Category: "breakfast", Price: 80, IsAvailable: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, food.ID)
}

func TestCreateFoodValidation(t *testing.T) {
	svc := NewFoodService(newStubFoodRepository())

	_, err := svc.CreateFood(context.Background(), &domain.Food{Category: "breakfast", Price: 80})
	assert.Error(t, err)

	_, err = svc.CreateFood(context.Background(), &domain.Food{Name: "Dosa", Price: 80})
	assert.Error(t, err)

	_, err = svc.CreateFood(context.Background(), &domain.Food{Name: "Dosa", Category: "breakfast", Price: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestGetFoodByID(t *testing.T) {
	repo := newStubFoodRepository()
	svc := NewFoodService(repo)

	created, err := svc.CreateFood(context.Background(), &domain.Food{
		Name: "Dosa", Category: "breakfast", Price: 80,
	})
	require.NoError(t, err)

	food, err := svc.GetFoodByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dosa", food.Name)

	_, err = svc.GetFoodByID(context.Background(), 0)
	assert.Error(t, err)

	_, err = svc.GetFoodByID(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSearchFoodsPassesFilterThrough(t *testing.T) {
	repo := newStubFoodRepository()
	svc := NewFoodService(repo)

	minPrice, maxPrice := 50.0, 100.0
	_, err := svc.SearchFoods(context.Background(), domain.FoodFilter{
		Query:    "dosa",
		Category: "breakfast",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "dosa", repo.lastFilter.Query)
	assert.Equal(t, "breakfast", repo.lastFilter.Category)
	assert.Equal(t, minPrice, *repo.lastFilter.MinPrice)
	assert.Equal(t, maxPrice, *repo.lastFilter.MaxPrice)
}

func TestSearchFoodsRejectsInvertedPriceRange(t *testing.T) {
	svc := NewFoodService(newStubFoodRepository())

	minPrice, maxPrice := 100.0, 50.0
	_, err := svc.SearchFoods(context.Background(), domain.FoodFilter{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed")
}

func TestUpdateFood(t *testing.T) {
	repo := newStubFoodRepository()
	svc := NewFoodService(repo)

	created, err := svc.CreateFood(context.Background(), &domain.Food{
		Name: "Dosa", Category: "breakfast", Price: 80,
	})
	require.NoError(t, err)

	created.Price = 90
	updated, err := svc.UpdateFood(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, float64(90), updated.Price)

	_, err = svc.UpdateFood(context.Background(), &domain.Food{ID: 42, Name: "Ghost", Price: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteFood(t *testing.T) {
	repo := newStubFoodRepository()
	svc := NewFoodService(repo)

	created, err := svc.CreateFood(context.Background(), &domain.Food{
		Name: "Dosa", Category: "breakfast", Price: 80,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFood(context.Background(), created.ID))

	err = svc.DeleteFood(context.Background(), created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

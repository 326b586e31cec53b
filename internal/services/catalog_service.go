package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrInvalidMeal  = errors.New("nutrition values must not be negative")
)

type CatalogService struct {
	store kv.Store
}

func NewCatalogService(store kv.Store) *CatalogService {
	return &CatalogService{store: store}
}

// GetAll returns the whole catalog, seeding the built-in meals when the
// stored list is empty.
func (s *CatalogService) GetAll(ctx context.Context) ([]models.Meal, error) {
	meals, err := kv.List[models.Meal](ctx, s.store, kv.KeyMeals)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	if len(meals) > 0 {
		return meals, nil
	}

	meals = seedMeals()
	if err := s.save(ctx, meals); err != nil {
		return nil, err
	}
	slog.Info("meal catalog seeded", "count", len(meals))
	return meals, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Meal, error) {
	meals, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		if meals[i].ID == id {
			return &meals[i], nil
		}
	}
	return nil, ErrMealNotFound
}

// ListByType filters the catalog by category; an empty type returns everything.
func (s *CatalogService) ListByType(ctx context.Context, mealType models.MealType) ([]models.Meal, error) {
	meals, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if mealType == "" {
		return meals, nil
	}
	out := make([]models.Meal, 0, len(meals))
	for _, m := range meals {
		if m.Type == mealType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.Meal, error) {
	meals, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Meal, 0, len(meals))
	for _, m := range meals {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

// Upsert replaces the meal with the same id in full, or appends it.
func (s *CatalogService) Upsert(ctx context.Context, meal models.Meal) error {
	if meal.Calories < 0 || meal.Protein < 0 || meal.Carbs < 0 || meal.Fat < 0 {
		return ErrInvalidMeal
	}
	meals, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range meals {
		if meals[i].ID == meal.ID {
			meals[i] = meal
			replaced = true
			break
		}
	}
	if !replaced {
		meals = append(meals, meal)
	}
	return s.save(ctx, meals)
}

// Create adds a new active dish, filling the fields the admin form leaves out.
func (s *CatalogService) Create(ctx context.Context, req *dto.CreateMealRequest) (*models.Meal, error) {
	meal := models.Meal{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Ingredients: req.Ingredients,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if meal.Description == "" {
		meal.Description = defaultMealDescription
	}
	if meal.ImageURL == "" {
		meal.ImageURL = defaultMealImageURL
	}
	if len(meal.Ingredients) == 0 {
		meal.Ingredients = []models.Ingredient{{Name: defaultMealIngredient, Removable: false}}
	}
	if meal.Type == "" {
		meal.Type = models.MealFitPlus
	}

	if err := s.Upsert(ctx, meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// ToggleActive flips availability. Unknown ids are ignored.
func (s *CatalogService) ToggleActive(ctx context.Context, id string) (*models.Meal, error) {
	meals, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		if meals[i].ID == id {
			meals[i].IsActive = !meals[i].IsActive
			if err := s.save(ctx, meals); err != nil {
				return nil, err
			}
			return &meals[i], nil
		}
	}
	return nil, nil
}

func (s *CatalogService) save(ctx context.Context, meals []models.Meal) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyMeals, meals); err != nil {
		return fmt.Errorf("failed to save meals: %w", err)
	}
	return nil
}

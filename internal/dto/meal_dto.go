package dto

import "github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"

// CreateMealRequest is the admin form for a new dish. Missing optional fields get defaults.
type CreateMealRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        models.MealType     `json:"type"`
	Calories    int                 `json:"calories"`
	Protein     int                 `json:"protein"`
	Carbs       int                 `json:"carbs"`
	Fat         int                 `json:"fat"`
	Ingredients []models.Ingredient `json:"ingredients"`
	ImageURL    string              `json:"image_url"`
}

type MealListResponse struct {
	Meals []models.Meal `json:"meals"`
	Total int           `json:"total"`
}

package dto

import "github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"

type PlaceOrderRequest struct {
	DurationDays models.PlanDuration `json:"duration_days"`
	Items        []models.OrderItem  `json:"items"`
}

type PlaceOrderResponse struct {
	Order       *models.Order `json:"order"`
	FailedDates []string      `json:"failed_log_dates,omitempty"`
}

type ToggleIngredientRequest struct {
	Item       models.OrderItem `json:"item"`
	Ingredient string           `json:"ingredient"`
}

type PlanOption struct {
	DurationDays models.PlanDuration `json:"duration_days"`
	MealCount    int                 `json:"meal_count"`
	Price        int64               `json:"price"`
}

type PlanRecommendation struct {
	DurationDays models.PlanDuration `json:"duration_days"`
	MealType     models.MealType     `json:"meal_type"`
	Price        int64               `json:"price"`
	Items        []models.OrderItem  `json:"items"`
}

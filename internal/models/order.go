package models

import "time"

type OrderItem struct {
	MealID             string   `json:"meal_id"`
	Quantity           int      `json:"quantity"`
	RemovedIngredients []string `json:"removed_ingredients"`
}

// Order is a meal-plan purchase. Only its pending log bookkeeping changes after placement.
type Order struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	CreatedAt    time.Time    `json:"created_at"`
	DurationDays PlanDuration `json:"duration_days"`
	Items        []OrderItem  `json:"items"`
	TotalPrice   int64        `json:"total_price"`
	Status       OrderStatus  `json:"status"`

	// DailyCalories is the per-day share merged into the user's logs; nil
	// when it could not be computed at placement.
	DailyCalories *int `json:"daily_calories,omitempty"`
	// PendingLogDates are plan days whose calorie merge has not succeeded yet.
	PendingLogDates []string `json:"pending_log_dates,omitempty"`
}

package dto

import "github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"

// LogCaloriesRequest adds to a day's calorie buckets; nil counters are untouched.
type LogCaloriesRequest struct {
	ConsumedCalories  *int `json:"consumed_calories"`
	ExtraFoodCalories *int `json:"extra_food_calories"`
	WorkoutCalories   *int `json:"workout_calories"`
}

type DailySummary struct {
	Log         models.DailyLog `json:"log"`
	TDEE        int             `json:"tdee"`
	NetCalories int             `json:"net_calories"`
	Remaining   int             `json:"remaining"`
	OverTarget  bool            `json:"over_target"`
}

type ChartPoint struct {
	Date  string `json:"date"`
	Net   int    `json:"net"`
	Limit int    `json:"limit"`
}

type WeeklyStatsResponse struct {
	Logs  []models.DailyLog `json:"logs"`
	Chart []ChartPoint      `json:"chart"`
}

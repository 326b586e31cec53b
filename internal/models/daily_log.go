package models

// DateLayout is the calendar-day key format for daily logs.
const DateLayout = "2006-01-02"

// DailyLog holds one user's calorie buckets for one calendar day.
type DailyLog struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Date              string `json:"date"`
	ConsumedCalories  int    `json:"consumed_calories"`
	ExtraFoodCalories int    `json:"extra_food_calories"`
	WorkoutCalories   int    `json:"workout_calories"`
}

// NetCalories is intake (plan meals plus extra food) minus workout burn.
func (l DailyLog) NetCalories() int {
	return l.ConsumedCalories + l.ExtraFoodCalories - l.WorkoutCalories
}

// Remaining is the calories left against target; negative means over target.
func (l DailyLog) Remaining(tdee int) int {
	return tdee - l.NetCalories()
}

package models

import "time"

// User is a storefront account with the body metrics its calorie target is derived from.
type User struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	HeightCm            float64       `json:"height_cm"`
	WeightKg            float64       `json:"weight_kg"`
	Goal                Goal          `json:"goal"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	Allergies           []string      `json:"allergies"`
	DislikedIngredients []string      `json:"disliked_ingredients"`
	TDEE                int           `json:"tdee"`
	IsAdmin             bool          `json:"is_admin"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

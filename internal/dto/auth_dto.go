package dto

import "github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"

type LoginRequest struct {
	Email string `json:"email"`
}

// RegisterRequest is the onboarding profile. Allergies may arrive either as a
// list or, from the onboarding form, as a comma-separated string in AllergiesText.
type RegisterRequest struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Age                 int                  `json:"age"`
	Gender              models.Gender        `json:"gender"`
	HeightCm            float64              `json:"height_cm"`
	WeightKg            float64              `json:"weight_kg"`
	Goal                models.Goal          `json:"goal"`
	ActivityLevel       models.ActivityLevel `json:"activity_level"`
	Allergies           []string             `json:"allergies"`
	AllergiesText       string               `json:"allergies_text,omitempty"`
	DislikedIngredients []string             `json:"disliked_ingredients"`
}

// UpdateProfileRequest is a partial profile; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name                *string               `json:"name"`
	Age                 *int                  `json:"age"`
	Gender              *models.Gender        `json:"gender"`
	HeightCm            *float64              `json:"height_cm"`
	WeightKg            *float64              `json:"weight_kg"`
	Goal                *models.Goal          `json:"goal"`
	ActivityLevel       *models.ActivityLevel `json:"activity_level"`
	Allergies           []string              `json:"allergies"`
	DislikedIngredients []string              `json:"disliked_ingredients"`
}

// TouchesMetrics reports whether the patch carries a field the calorie target depends on.
func (r *UpdateProfileRequest) TouchesMetrics() bool {
	return r.Age != nil || r.Gender != nil || r.HeightCm != nil ||
		r.WeightKg != nil || r.Goal != nil || r.ActivityLevel != nil
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	User        ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	models.User
	GoalLabel     string   `json:"goal_label"`
	ActivityLabel string   `json:"activity_label"`
	GenderLabel   string   `json:"gender_label"`
	BMI           *float64 `json:"bmi,omitempty"`
	BMICategory   string   `json:"bmi_category,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

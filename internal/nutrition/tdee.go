// Package nutrition holds the pure calorie and body-metric formulas.
package nutrition

import (
	"math"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
)

const goalAdjustment = 500

// CalculateTDEE returns the daily calorie target using the Mifflin-St Jeor
// BMR, an activity multiplier and a fixed goal adjustment. Inputs are not
// validated; nonsensical metrics yield nonsensical (possibly negative) targets.
func CalculateTDEE(weightKg, heightCm float64, age int, gender models.Gender, activity models.ActivityLevel, goal models.Goal) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := Round(bmr * ActivityMultiplier(activity))

	switch goal {
	case models.GoalLose:
		return tdee - goalAdjustment
	case models.GoalGain:
		return tdee + goalAdjustment
	default:
		return tdee
	}
}

// ActivityMultiplier maps an activity level to its TDEE multiplier.
func ActivityMultiplier(a models.ActivityLevel) float64 {
	switch a {
	case models.ActivityMedium:
		return 1.55
	case models.ActivityHigh:
		return 1.725
	default:
		return 1.2
	}
}

// Round rounds half up (toward +Inf), matching the storefront's client-side rounding.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

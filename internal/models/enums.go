package models

import (
	"encoding/json"
	"fmt"
)

// Goal is the user's body-composition objective.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalLose, GoalMaintain, GoalGain:
		return true
	}
	return false
}

func (g Goal) Label() string {
	switch g {
	case GoalLose:
		return "Giảm Cân"
	case GoalMaintain:
		return "Giữ Cân"
	case GoalGain:
		return "Tăng Cơ"
	}
	return ""
}

func (g *Goal) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "goal", (*string)(g), func(s string) bool { return Goal(s).Valid() })
}

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivityLow, ActivityMedium, ActivityHigh:
		return true
	}
	return false
}

func (a ActivityLevel) Label() string {
	switch a {
	case ActivityLow:
		return "Ít vận động"
	case ActivityMedium:
		return "Vừa phải"
	case ActivityHigh:
		return "Năng động"
	}
	return ""
}

func (a *ActivityLevel) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "activity level", (*string)(a), func(s string) bool { return ActivityLevel(s).Valid() })
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Nam"
	case GenderFemale:
		return "Nữ"
	case GenderOther:
		return "Khác"
	}
	return ""
}

func (g *Gender) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "gender", (*string)(g), func(s string) bool { return Gender(s).Valid() })
}

// MealType is the fitness category a catalog meal belongs to.
type MealType string

const (
	MealFitPlus  MealType = "fit_plus"
	MealFitMinus MealType = "fit_minus"
)

func (t MealType) Valid() bool {
	switch t {
	case MealFitPlus, MealFitMinus:
		return true
	}
	return false
}

func (t MealType) Label() string {
	switch t {
	case MealFitPlus:
		return "Tăng Cơ (Fit+)"
	case MealFitMinus:
		return "Giảm Mỡ (Fit-)"
	}
	return ""
}

func (t *MealType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "meal type", (*string)(t), func(s string) bool { return MealType(s).Valid() })
}

// MealTypeForGoal picks the catalog category recommended for a goal.
func MealTypeForGoal(g Goal) MealType {
	if g == GoalGain {
		return MealFitPlus
	}
	return MealFitMinus
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderDelivered:
		return true
	}
	return false
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "order status", (*string)(s), func(v string) bool { return OrderStatus(v).Valid() })
}

// PlanDuration is the length of a meal-plan subscription in days.
type PlanDuration int

const (
	Plan3Days  PlanDuration = 3
	Plan7Days  PlanDuration = 7
	Plan30Days PlanDuration = 30
)

// PlanDurations lists the offered durations in display order.
var PlanDurations = []PlanDuration{Plan3Days, Plan7Days, Plan30Days}

func (d PlanDuration) Valid() bool {
	switch d {
	case Plan3Days, Plan7Days, Plan30Days:
		return true
	}
	return false
}

// MealSlots is the number of meals in a plan: lunch and dinner every day.
func (d PlanDuration) MealSlots() int {
	return int(d) * 2
}

func (d *PlanDuration) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("plan duration: %w", err)
	}
	if !PlanDuration(n).Valid() {
		return fmt.Errorf("invalid plan duration %d", n)
	}
	*d = PlanDuration(n)
	return nil
}

func unmarshalEnum(b []byte, kind string, dst *string, valid func(string) bool) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if !valid(s) {
		return fmt.Errorf("invalid %s %q", kind, s)
	}
	*dst = s
	return nil
}

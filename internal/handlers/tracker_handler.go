package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TrackerHandler struct {
	tracker  *services.TrackerService
	accounts *services.AccountService
}

func NewTrackerHandler(tracker *services.TrackerService, accounts *services.AccountService) *TrackerHandler {
	return &TrackerHandler{tracker: tracker, accounts: accounts}
}

func (h *TrackerHandler) Today(c *fiber.Ctx) error {
	return h.summary(c, h.tracker.Today())
}

func (h *TrackerHandler) Get(c *fiber.Ctx) error {
	date, ok := parseDate(c.Params("date"))
	if !ok {
		return badRequest(c, "Date must be YYYY-MM-DD")
	}
	return h.summary(c, date)
}

// Log adds calories to a day. Counters are additive; omitted ones are unchanged.
func (h *TrackerHandler) Log(c *fiber.Ctx) error {
	date, ok := parseDate(c.Params("date"))
	if !ok {
		return badRequest(c, "Date must be YYYY-MM-DD")
	}

	var req dto.LogCaloriesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	for _, v := range []*int{req.ConsumedCalories, req.ExtraFoodCalories, req.WorkoutCalories} {
		if v != nil && *v < 0 {
			return badRequest(c, "Calories must not be negative")
		}
	}

	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	if _, err := h.tracker.LogDaily(c.UserContext(), user.ID, date, &req); err != nil {
		return internalError(c, "calorie log failed", err)
	}

	summary, err := h.tracker.Summary(c.UserContext(), user, date)
	if err != nil {
		return internalError(c, "daily summary failed", err)
	}
	return c.JSON(summary)
}

func (h *TrackerHandler) Weekly(c *fiber.Ctx) error {
	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	stats, err := h.tracker.WeeklyChart(c.UserContext(), user)
	if err != nil {
		return internalError(c, "weekly stats failed", err)
	}
	return c.JSON(stats)
}

func (h *TrackerHandler) summary(c *fiber.Ctx, date string) error {
	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	summary, err := h.tracker.Summary(c.UserContext(), user, date)
	if err != nil {
		return internalError(c, "daily summary failed", err)
	}
	return c.JSON(summary)
}

func parseDate(s string) (string, bool) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(models.DateLayout), true
}

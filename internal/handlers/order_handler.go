package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders   *services.OrderService
	accounts *services.AccountService
}

func NewOrderHandler(orders *services.OrderService, accounts *services.AccountService) *OrderHandler {
	return &OrderHandler{orders: orders, accounts: accounts}
}

func (h *OrderHandler) Prices(c *fiber.Ctx) error {
	options := make([]dto.PlanOption, 0, len(models.PlanDurations))
	for _, d := range models.PlanDurations {
		options = append(options, dto.PlanOption{
			DurationDays: d,
			MealCount:    d.MealSlots(),
			Price:        services.PlanPrices[d],
		})
	}
	return c.JSON(options)
}

func (h *OrderHandler) Recommendation(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("duration"))
	duration := models.PlanDuration(n)
	if err != nil || !duration.Valid() {
		return badRequest(c, "Duration must be 3, 7 or 30")
	}

	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}

	rec, err := h.orders.RecommendPlan(c.UserContext(), user, duration)
	if err != nil {
		return internalError(c, "plan recommendation failed", err)
	}
	return c.JSON(rec)
}

func (h *OrderHandler) ToggleIngredient(c *fiber.Ctx) error {
	var req dto.ToggleIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.orders.ToggleIngredient(c.UserContext(), req.Item, req.Ingredient)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMealNotFound):
			return mealNotFound(c)
		case errors.Is(err, services.ErrIngredientNotRemovable):
			return badRequest(c, err.Error())
		}
		return internalError(c, "ingredient toggle failed", err)
	}
	return c.JSON(item)
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Items) == 0 {
		return badRequest(c, "At least one item is required")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return badRequest(c, "Item quantity must be at least 1")
		}
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), userID, req.DurationDays, req.Items)
	if err != nil {
		var mergeErr *services.LogMergeError
		switch {
		case errors.Is(err, services.ErrInvalidDuration):
			return badRequest(c, "Duration must be 3, 7 or 30")
		case errors.As(err, &mergeErr) && order != nil:
			// The order stands; the client is told which days were not logged.
			slog.Warn("order placed with missing log days", "order_id", order.ID, "error", err)
			return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{
				Order:       order,
				FailedDates: mergeErr.FailedDates,
			})
		}
		return internalError(c, "order placement failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{Order: order})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	orders, err := h.orders.GetUserOrders(c.UserContext(), userID)
	if err != nil {
		return internalError(c, "order list failed", err)
	}
	return c.JSON(orders)
}

// RetryLogs merges the calorie days still pending on one of the caller's
// orders. Days that fail again are reported the same way as at placement.
func (h *OrderHandler) RetryLogs(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	order, err := h.orders.RetryPendingLogs(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		var mergeErr *services.LogMergeError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Order not found",
			})
		case errors.As(err, &mergeErr) && order != nil:
			slog.Warn("order log retry incomplete", "order_id", order.ID, "error", err)
			return c.JSON(dto.PlaceOrderResponse{Order: order, FailedDates: mergeErr.FailedDates})
		}
		return internalError(c, "order log retry failed", err)
	}
	return c.JSON(dto.PlaceOrderResponse{Order: order})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/nutrition"
	"github.com/google/uuid"
)

var (
	ErrInvalidDuration        = errors.New("invalid plan duration")
	ErrIngredientNotRemovable = errors.New("ingredient cannot be removed")
	ErrOrderNotFound          = errors.New("order not found")
)

// PlanPrices is the fixed price table in VND.
var PlanPrices = map[models.PlanDuration]int64{
	models.Plan3Days:  450000,
	models.Plan7Days:  950000,
	models.Plan30Days: 3800000,
}

func PriceFor(d models.PlanDuration) (int64, error) {
	price, ok := PlanPrices[d]
	if !ok {
		return 0, ErrInvalidDuration
	}
	return price, nil
}

// LogMergeError reports the days whose calorie merge failed after the order
// itself was saved.
type LogMergeError struct {
	OrderID       string
	UserID        string
	DailyCalories int
	FailedDates   []string
	Err           error

	// order is set when DailyCalories could not be computed at placement.
	order *models.Order
}

func (e *LogMergeError) Error() string {
	return fmt.Sprintf("order %s: failed to merge calories for %s: %v",
		e.OrderID, strings.Join(e.FailedDates, ", "), e.Err)
}

func (e *LogMergeError) Unwrap() error {
	return e.Err
}

type OrderService struct {
	store   kv.Store
	catalog *CatalogService
	tracker *TrackerService
	now     func() time.Time
}

func NewOrderService(store kv.Store, catalog *CatalogService, tracker *TrackerService) *OrderService {
	return &OrderService{store: store, catalog: catalog, tracker: tracker, now: time.Now}
}

// PlaceOrder prices a plan and records it as a pending order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, duration models.PlanDuration, items []models.OrderItem) (*models.Order, error) {
	price, err := PriceFor(duration)
	if err != nil {
		return nil, err
	}
	return s.CreateOrder(ctx, userID, duration, items, price)
}

// CreateOrder saves a pending order, then spreads its calories evenly over
// duration consecutive days starting today. Items are not checked against the
// catalog. The order is kept even when some days fail; those are recorded on
// the order as pending and come back as a *LogMergeError alongside it.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, duration models.PlanDuration, items []models.OrderItem, totalPrice int64) (*models.Order, error) {
	if !duration.Valid() {
		return nil, ErrInvalidDuration
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	order := models.Order{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    s.now().UTC(),
		DurationDays: duration,
		Items:        items,
		TotalPrice:   totalPrice,
		Status:       models.OrderPending,
	}

	dates := s.planDates(duration)
	daily, shareErr := s.DailyCalories(ctx, &order)
	if shareErr == nil {
		order.DailyCalories = &daily
	} else {
		order.PendingLogDates = dates
	}

	orders, err := kv.List[models.Order](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	orders = append(orders, order)
	if err := kv.SetJSON(ctx, s.store, kv.KeyOrders, orders); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if shareErr != nil {
		return &order, &LogMergeError{OrderID: order.ID, UserID: userID, FailedDates: dates, Err: shareErr, order: &order}
	}

	failed, errs := s.mergeDates(ctx, userID, dates, daily)

	slog.Info("order created",
		"order_id", order.ID,
		"user_id", userID,
		"duration_days", int(duration),
		"daily_calories", daily,
	)

	if len(failed) > 0 {
		slog.Error("order calorie merge incomplete", "order_id", order.ID, "failed_dates", failed)
		order.PendingLogDates = failed
		if err := s.setPending(ctx, order.ID, nil, failed); err != nil {
			errs = append(errs, err)
		}
		return &order, &LogMergeError{
			OrderID:       order.ID,
			UserID:        userID,
			DailyCalories: daily,
			FailedDates:   failed,
			Err:           errors.Join(errs...),
		}
	}
	return &order, nil
}

// MergeDay adds the order's per-day calorie share to the user's log for date.
// It recomputes the share from the current catalog.
func (s *OrderService) MergeDay(ctx context.Context, order *models.Order, date string) error {
	daily, err := s.DailyCalories(ctx, order)
	if err != nil {
		return err
	}
	return s.mergeCalories(ctx, order.UserID, date, daily)
}

// RetryLogMerge reattempts the failed days of a LogMergeError with the share
// computed when the order was placed. It returns a new *LogMergeError for the
// days that still fail, or nil.
func (s *OrderService) RetryLogMerge(ctx context.Context, mergeErr *LogMergeError) error {
	if mergeErr.order != nil {
		daily, err := s.DailyCalories(ctx, mergeErr.order)
		if err != nil {
			return mergeErr
		}
		next := *mergeErr
		next.DailyCalories = daily
		next.order = nil
		mergeErr = &next
	}

	failed, errs := s.mergeDates(ctx, mergeErr.UserID, mergeErr.FailedDates, mergeErr.DailyCalories)
	if err := s.setPending(ctx, mergeErr.OrderID, mergeErr.FailedDates, failed); err != nil {
		errs = append(errs, err)
	}
	if len(failed) == 0 && len(errs) == 0 {
		return nil
	}
	return &LogMergeError{
		OrderID:       mergeErr.OrderID,
		UserID:        mergeErr.UserID,
		DailyCalories: mergeErr.DailyCalories,
		FailedDates:   failed,
		Err:           errors.Join(errs...),
	}
}

// RetryPendingLogs merges the stored pending days of one of the user's
// orders. Days already logged are never merged twice. An order with nothing
// pending is returned unchanged.
func (s *OrderService) RetryPendingLogs(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if len(order.PendingLogDates) == 0 {
		return order, nil
	}

	var daily int
	if order.DailyCalories != nil {
		daily = *order.DailyCalories
	} else {
		daily, err = s.DailyCalories(ctx, order)
		if err != nil {
			return order, &LogMergeError{OrderID: order.ID, UserID: userID, FailedDates: order.PendingLogDates, Err: err, order: order}
		}
		if err := s.updateOrder(ctx, order.ID, func(o *models.Order) { o.DailyCalories = &daily }); err != nil {
			return nil, err
		}
		order.DailyCalories = &daily
	}

	retried := order.PendingLogDates
	failed, errs := s.mergeDates(ctx, userID, retried, daily)
	if err := s.setPending(ctx, order.ID, retried, failed); err != nil {
		return nil, err
	}
	order.PendingLogDates = failed
	slog.Info("order calorie merge retried", "order_id", order.ID, "retried", len(retried), "still_failed", len(failed))

	if len(failed) > 0 {
		return order, &LogMergeError{OrderID: order.ID, UserID: userID, DailyCalories: daily, FailedDates: failed, Err: errors.Join(errs...)}
	}
	return order, nil
}

// GetUserOrder returns one order owned by userID.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	orders, err := kv.List[models.Order](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == orderID && orders[i].UserID == userID {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// GetUserOrders lists a user's orders, most recent first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := kv.List[models.Order](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	out := make([]models.Order, 0)
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].UserID == userID {
			out = append(out, orders[i])
		}
	}
	return out, nil
}

// RecommendPlan fills every lunch and dinner slot of the plan by cycling
// through the active meals that suit the user's goal.
func (s *OrderService) RecommendPlan(ctx context.Context, user *models.User, duration models.PlanDuration) (*dto.PlanRecommendation, error) {
	price, err := PriceFor(duration)
	if err != nil {
		return nil, err
	}

	active, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	mealType := models.MealTypeForGoal(user.Goal)
	pool := make([]models.Meal, 0, len(active))
	for _, m := range active {
		if m.Type == mealType {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		pool = active
	}

	rec := &dto.PlanRecommendation{
		DurationDays: duration,
		MealType:     mealType,
		Price:        price,
		Items:        []models.OrderItem{},
	}
	if len(pool) == 0 {
		return rec, nil
	}
	for i := 0; i < duration.MealSlots(); i++ {
		rec.Items = append(rec.Items, models.OrderItem{
			MealID:             pool[i%len(pool)].ID,
			Quantity:           1,
			RemovedIngredients: []string{},
		})
	}
	return rec, nil
}

// ToggleIngredient adds or removes name from the item's removed set.
func (s *OrderService) ToggleIngredient(ctx context.Context, item models.OrderItem, name string) (*models.OrderItem, error) {
	meal, err := s.catalog.Get(ctx, item.MealID)
	if err != nil {
		return nil, err
	}
	ing, ok := meal.Ingredient(name)
	if !ok || !ing.Removable {
		return nil, ErrIngredientNotRemovable
	}

	removed := make([]string, 0, len(item.RemovedIngredients)+1)
	found := false
	for _, r := range item.RemovedIngredients {
		if r == name {
			found = true
			continue
		}
		removed = append(removed, r)
	}
	if !found {
		removed = append(removed, name)
	}
	item.RemovedIngredients = removed
	return &item, nil
}

// DailyCalories is the order's total meal calories divided over its days,
// rounded half up. Meals missing from the catalog count as zero, and so does
// any line with negative calories or quantity, so the share is never negative.
func (s *OrderService) DailyCalories(ctx context.Context, order *models.Order) (int, error) {
	meals, err := s.catalog.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	calories := make(map[string]int, len(meals))
	for _, m := range meals {
		calories[m.ID] = m.Calories
	}

	total := 0
	for _, item := range order.Items {
		if line := calories[item.MealID] * item.Quantity; line > 0 {
			total += line
		}
	}
	return nutrition.Round(float64(total) / float64(order.DurationDays)), nil
}

func (s *OrderService) mergeCalories(ctx context.Context, userID, date string, calories int) error {
	_, err := s.tracker.LogDaily(ctx, userID, date, &dto.LogCaloriesRequest{ConsumedCalories: &calories})
	return err
}

func (s *OrderService) mergeDates(ctx context.Context, userID string, dates []string, calories int) ([]string, []error) {
	var (
		failed []string
		errs   []error
	)
	for _, date := range dates {
		if err := s.mergeCalories(ctx, userID, date, calories); err != nil {
			failed = append(failed, date)
			errs = append(errs, err)
		}
	}
	return failed, errs
}

// setPending drops retried days from the order's pending set and adds the
// ones that failed.
func (s *OrderService) setPending(ctx context.Context, orderID string, retried, failed []string) error {
	return s.updateOrder(ctx, orderID, func(o *models.Order) {
		done := make(map[string]bool, len(retried))
		for _, d := range retried {
			done[d] = true
		}
		pending := make([]string, 0, len(o.PendingLogDates)+len(failed))
		seen := make(map[string]bool)
		for _, d := range o.PendingLogDates {
			if !done[d] && !seen[d] {
				pending = append(pending, d)
				seen[d] = true
			}
		}
		for _, d := range failed {
			if !seen[d] {
				pending = append(pending, d)
				seen[d] = true
			}
		}
		o.PendingLogDates = pending
	})
}

func (s *OrderService) updateOrder(ctx context.Context, orderID string, fn func(*models.Order)) error {
	orders, err := kv.List[models.Order](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == orderID {
			fn(&orders[i])
			if err := kv.SetJSON(ctx, s.store, kv.KeyOrders, orders); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			return nil
		}
	}
	return ErrOrderNotFound
}

func (s *OrderService) planDates(d models.PlanDuration) []string {
	start := s.tracker.now().In(s.tracker.loc)
	dates := make([]string, 0, int(d))
	for i := 0; i < int(d); i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(models.DateLayout))
	}
	return dates
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
)

var planWeek = []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14", "2026-03-15", "2026-03-16"}

func TestCreateOrderDistributesCalories(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	// m3 is 700 kcal: 6 x 700 = 4200 over 7 days.
	items := []models.OrderItem{{MealID: "m3", Quantity: 6}}
	order, err := svc.orders.CreateOrder(ctx, "u1", models.Plan7Days, items, 950000)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Status != models.OrderPending || order.TotalPrice != 950000 || !order.CreatedAt.Equal(fixedNow) {
		t.Fatalf("order = %+v", order)
	}

	for _, d := range planWeek {
		log, _ := svc.tracker.GetLog(ctx, "u1", d)
		if log.ConsumedCalories != 600 {
			t.Fatalf("%s consumed = %d, want 600", d, log.ConsumedCalories)
		}
	}
	after, _ := svc.tracker.GetLog(ctx, "u1", "2026-03-17")
	if after.ConsumedCalories != 0 {
		t.Fatalf("day after plan consumed = %d, want 0", after.ConsumedCalories)
	}
}

func TestCreateOrderCompoundsAndRounds(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	svc.orders.CreateOrder(ctx, "u1", models.Plan7Days, []models.OrderItem{{MealID: "m3", Quantity: 6}}, 950000)
	// 450 / 3 = 150; unknown meals count as zero.
	if _, err := svc.orders.CreateOrder(ctx, "u1", models.Plan3Days, []models.OrderItem{{MealID: "m2", Quantity: 1}, {MealID: "gone", Quantity: 4}}, 450000); err != nil {
		t.Fatalf("second order: %v", err)
	}

	log, _ := svc.tracker.GetLog(ctx, "u1", "2026-03-12")
	if log.ConsumedCalories != 750 {
		t.Fatalf("overlap day consumed = %d, want 750", log.ConsumedCalories)
	}
	log, _ = svc.tracker.GetLog(ctx, "u1", "2026-03-13")
	if log.ConsumedCalories != 600 {
		t.Fatalf("non-overlap day consumed = %d, want 600", log.ConsumedCalories)
	}

	// 650 / 7 = 92.86 -> 93
	order := &models.Order{DurationDays: models.Plan7Days, Items: []models.OrderItem{{MealID: "m1", Quantity: 1}}}
	daily, err := svc.orders.DailyCalories(ctx, order)
	if err != nil || daily != 93 {
		t.Fatalf("daily = %d err = %v, want 93", daily, err)
	}
}

func TestCreateOrderRejectsInvalidDuration(t *testing.T) {
	svc := newTestServices(t, kv.NewMemoryStore())

	_, err := svc.orders.CreateOrder(context.Background(), "u1", models.PlanDuration(5), nil, 0)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidDuration)
	}
	if _, err := PriceFor(models.PlanDuration(14)); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("PriceFor err = %v, want %v", err, ErrInvalidDuration)
	}
}

func TestPlaceOrderUsesPriceTable(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	want := map[models.PlanDuration]int64{models.Plan3Days: 450000, models.Plan7Days: 950000, models.Plan30Days: 3800000}
	for d, price := range want {
		order, err := svc.orders.PlaceOrder(ctx, "u1", d, []models.OrderItem{{MealID: "m1", Quantity: 1}})
		if err != nil {
			t.Fatalf("place %d: %v", d, err)
		}
		if order.TotalPrice != price {
			t.Fatalf("%d-day price = %d, want %d", d, order.TotalPrice, price)
		}
	}
}

func TestGetUserOrdersMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	first, _ := svc.orders.PlaceOrder(ctx, "u1", models.Plan3Days, []models.OrderItem{{MealID: "m1", Quantity: 1}})
	svc.orders.PlaceOrder(ctx, "u2", models.Plan3Days, []models.OrderItem{{MealID: "m1", Quantity: 1}})
	second, _ := svc.orders.PlaceOrder(ctx, "u1", models.Plan7Days, []models.OrderItem{{MealID: "m2", Quantity: 2}})

	orders, err := svc.orders.GetUserOrders(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len = %d, want 2", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("order ids = %s, %s; want %s, %s", orders[0].ID, orders[1].ID, second.ID, first.ID)
	}
}

func TestCreateOrderKeepsOrderWhenLogMergeFails(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	svc := newTestServices(t, store)
	if _, err := svc.catalog.GetAll(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store.failWrites(kv.KeyLogs, true)
	order, err := svc.orders.CreateOrder(ctx, "u1", models.Plan3Days, []models.OrderItem{{MealID: "m1", Quantity: 3}}, 450000)

	var mergeErr *LogMergeError
	if !errors.As(err, &mergeErr) {
		t.Fatalf("err = %v, want *LogMergeError", err)
	}
	if !errors.Is(err, errStoreFailed) {
		t.Fatalf("err = %v, want it to wrap the store failure", err)
	}
	if order == nil || mergeErr.OrderID != order.ID || len(mergeErr.FailedDates) != 3 || mergeErr.DailyCalories != 650 {
		t.Fatalf("order = %+v mergeErr = %+v", order, mergeErr)
	}

	orders, _ := svc.orders.GetUserOrders(ctx, "u1")
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want the order persisted", len(orders))
	}

	store.failWrites(kv.KeyLogs, false)
	if err := svc.orders.RetryLogMerge(ctx, mergeErr); err != nil {
		t.Fatalf("retry: %v", err)
	}
	for _, d := range planWeek[:3] {
		log, _ := svc.tracker.GetLog(ctx, "u1", d)
		if log.ConsumedCalories != 650 {
			t.Fatalf("%s consumed = %d, want 650", d, log.ConsumedCalories)
		}
	}
	if orders, _ := svc.orders.GetUserOrders(ctx, "u1"); len(orders) != 1 {
		t.Fatalf("orders = %d after retry, want 1", len(orders))
	}
}

func TestRetryPendingLogsClearsFailedDays(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	svc := newTestServices(t, store)
	if _, err := svc.catalog.GetAll(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store.failWrites(kv.KeyLogs, true)
	order, err := svc.orders.CreateOrder(ctx, "u1", models.Plan3Days, []models.OrderItem{{MealID: "m1", Quantity: 3}}, 450000)
	var mergeErr *LogMergeError
	if !errors.As(err, &mergeErr) {
		t.Fatalf("err = %v, want *LogMergeError", err)
	}

	stored, err := svc.orders.GetUserOrder(ctx, "u1", order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(stored.PendingLogDates) != 3 || stored.DailyCalories == nil || *stored.DailyCalories != 650 {
		t.Fatalf("stored = %+v, want 3 pending days at 650", stored)
	}

	if _, err := svc.orders.RetryPendingLogs(ctx, "u2", order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user err = %v, want %v", err, ErrOrderNotFound)
	}

	// Still failing: the days stay pending.
	if _, err := svc.orders.RetryPendingLogs(ctx, "u1", order.ID); !errors.As(err, &mergeErr) || len(mergeErr.FailedDates) != 3 {
		t.Fatalf("err = %v, want 3 failed days", err)
	}

	store.failWrites(kv.KeyLogs, false)
	retried, err := svc.orders.RetryPendingLogs(ctx, "u1", order.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(retried.PendingLogDates) != 0 {
		t.Fatalf("pending = %v, want none", retried.PendingLogDates)
	}
	if _, err := svc.orders.RetryPendingLogs(ctx, "u1", order.ID); err != nil {
		t.Fatalf("second retry: %v", err)
	}
	for _, d := range planWeek[:3] {
		log, _ := svc.tracker.GetLog(ctx, "u1", d)
		if log.ConsumedCalories != 650 {
			t.Fatalf("%s consumed = %d, want 650", d, log.ConsumedCalories)
		}
	}
	stored, _ = svc.orders.GetUserOrder(ctx, "u1", order.ID)
	if len(stored.PendingLogDates) != 0 {
		t.Fatalf("stored pending = %v, want none", stored.PendingLogDates)
	}
}

func TestDailyCaloriesIgnoresNegativeLines(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newTestServices(t, store)

	legacy := []models.Meal{
		{ID: "bad", Name: "Legacy", Type: models.MealFitPlus, Calories: -700, IsActive: true},
		{ID: "ok", Name: "Fine", Type: models.MealFitPlus, Calories: 300, IsActive: true},
	}
	if err := kv.SetJSON(ctx, store, kv.KeyMeals, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	order := &models.Order{DurationDays: models.Plan3Days, Items: []models.OrderItem{
		{MealID: "bad", Quantity: 6},
		{MealID: "ok", Quantity: 1},
		{MealID: "ok", Quantity: -2},
	}}
	daily, err := svc.orders.DailyCalories(ctx, order)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if daily != 100 {
		t.Fatalf("daily = %d, want 100", daily)
	}

	if _, err := svc.orders.CreateOrder(ctx, "u1", models.Plan3Days, []models.OrderItem{{MealID: "bad", Quantity: 3}}, 450000); err != nil {
		t.Fatalf("create: %v", err)
	}
	log, _ := svc.tracker.GetLog(ctx, "u1", planWeek[0])
	if log.ConsumedCalories != 0 {
		t.Fatalf("consumed = %d, want 0", log.ConsumedCalories)
	}
}

func TestMergeDayRetriesSingleDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	order := &models.Order{UserID: "u1", DurationDays: models.Plan3Days, Items: []models.OrderItem{{MealID: "m2", Quantity: 1}}}
	if err := svc.orders.MergeDay(ctx, order, "2026-03-20"); err != nil {
		t.Fatalf("merge day: %v", err)
	}
	log, _ := svc.tracker.GetLog(ctx, "u1", "2026-03-20")
	if log.ConsumedCalories != 150 {
		t.Fatalf("consumed = %d, want 150", log.ConsumedCalories)
	}
}

func TestRecommendPlanFollowsGoal(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())

	rec, err := svc.orders.RecommendPlan(ctx, &models.User{Goal: models.GoalMaintain}, models.Plan3Days)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	want := []string{"m2", "m4", "m5", "m2", "m4", "m5"}
	if rec.MealType != models.MealFitMinus || rec.Price != 450000 || len(rec.Items) != len(want) {
		t.Fatalf("rec = %+v", rec)
	}
	for i, item := range rec.Items {
		if item.MealID != want[i] || item.Quantity != 1 || len(item.RemovedIngredients) != 0 {
			t.Fatalf("item %d = %+v, want %s x1", i, item, want[i])
		}
	}

	gain, _ := svc.orders.RecommendPlan(ctx, &models.User{Goal: models.GoalGain}, models.Plan7Days)
	if len(gain.Items) != 14 || gain.Items[0].MealID != "m1" || gain.Items[1].MealID != "m3" {
		t.Fatalf("gain items = %+v", gain.Items)
	}
}

func TestRecommendPlanFallsBackToActiveMeals(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())
	for _, id := range []string{"m1", "m3", "m6", "m4"} {
		svc.catalog.ToggleActive(ctx, id)
	}

	rec, err := svc.orders.RecommendPlan(ctx, &models.User{Goal: models.GoalGain}, models.Plan3Days)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, item := range rec.Items {
		if item.MealID != "m2" && item.MealID != "m5" {
			t.Fatalf("recommended inactive or unexpected meal %s", item.MealID)
		}
	}
}

func TestToggleIngredient(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t, kv.NewMemoryStore())
	item := models.OrderItem{MealID: "m1", Quantity: 1}

	removed, err := svc.orders.ToggleIngredient(ctx, item, "Bông Cải")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(removed.RemovedIngredients) != 1 || removed.RemovedIngredients[0] != "Bông Cải" {
		t.Fatalf("removed = %q", removed.RemovedIngredients)
	}

	restored, err := svc.orders.ToggleIngredient(ctx, *removed, "Bông Cải")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if len(restored.RemovedIngredients) != 0 {
		t.Fatalf("restored = %q, want empty", restored.RemovedIngredients)
	}

	if _, err := svc.orders.ToggleIngredient(ctx, item, "Ức Gà"); !errors.Is(err, ErrIngredientNotRemovable) {
		t.Fatalf("anchor err = %v, want %v", err, ErrIngredientNotRemovable)
	}
	if _, err := svc.orders.ToggleIngredient(ctx, models.OrderItem{MealID: "zz"}, "x"); !errors.Is(err, ErrMealNotFound) {
		t.Fatalf("unknown meal err = %v, want %v", err, ErrMealNotFound)
	}
}

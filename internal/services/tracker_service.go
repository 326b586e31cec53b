package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/google/uuid"
)

const weeklyWindow = 7

type TrackerService struct {
	store kv.Store
	loc   *time.Location
	now   func() time.Time
}

func NewTrackerService(store kv.Store, loc *time.Location) *TrackerService {
	if loc == nil {
		loc = time.UTC
	}
	return &TrackerService{store: store, loc: loc, now: time.Now}
}

// DateKey formats t as a calendar day in the tracker's timezone.
func (s *TrackerService) DateKey(t time.Time) string {
	return t.In(s.loc).Format(models.DateLayout)
}

func (s *TrackerService) Today() string {
	return s.DateKey(s.now())
}

// GetLog returns the stored row for the day, or an unsaved zero row.
func (s *TrackerService) GetLog(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	logs, err := s.loadLogs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		if logs[i].UserID == userID && logs[i].Date == date {
			return &logs[i], nil
		}
	}
	return &models.DailyLog{UserID: userID, Date: date}, nil
}

// LogDaily adds the present counters to the day's row, creating it when
// needed. Negative amounts are dropped.
func (s *TrackerService) LogDaily(ctx context.Context, userID, date string, patch *dto.LogCaloriesRequest) (*models.DailyLog, error) {
	logs, err := s.loadLogs(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range logs {
		if logs[i].UserID == userID && logs[i].Date == date {
			idx = i
			break
		}
	}
	if idx == -1 {
		logs = append(logs, models.DailyLog{ID: uuid.NewString(), UserID: userID, Date: date})
		idx = len(logs) - 1
	}

	row := &logs[idx]
	addCounter(&row.ConsumedCalories, patch.ConsumedCalories)
	addCounter(&row.ExtraFoodCalories, patch.ExtraFoodCalories)
	addCounter(&row.WorkoutCalories, patch.WorkoutCalories)

	if err := s.saveLogs(ctx, logs); err != nil {
		return nil, err
	}
	out := *row
	return &out, nil
}

// GetWeeklyStats returns the user's most recent rows, at most seven, oldest first.
func (s *TrackerService) GetWeeklyStats(ctx context.Context, userID string) ([]models.DailyLog, error) {
	logs, err := s.loadLogs(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]models.DailyLog, 0, weeklyWindow)
	for _, l := range logs {
		if l.UserID == userID {
			mine = append(mine, l)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Date < mine[j].Date })
	if len(mine) > weeklyWindow {
		mine = mine[len(mine)-weeklyWindow:]
	}
	return mine, nil
}

func (s *TrackerService) Summary(ctx context.Context, user *models.User, date string) (*dto.DailySummary, error) {
	log, err := s.GetLog(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}
	remaining := log.Remaining(user.TDEE)
	return &dto.DailySummary{
		Log:         *log,
		TDEE:        user.TDEE,
		NetCalories: log.NetCalories(),
		Remaining:   remaining,
		OverTarget:  remaining < 0,
	}, nil
}

// WeeklyChart pairs each recent day's net intake with the user's target.
func (s *TrackerService) WeeklyChart(ctx context.Context, user *models.User) (*dto.WeeklyStatsResponse, error) {
	logs, err := s.GetWeeklyStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	chart := make([]dto.ChartPoint, 0, len(logs))
	for _, l := range logs {
		chart = append(chart, dto.ChartPoint{Date: l.Date, Net: l.NetCalories(), Limit: user.TDEE})
	}
	return &dto.WeeklyStatsResponse{Logs: logs, Chart: chart}, nil
}

func (s *TrackerService) loadLogs(ctx context.Context) ([]models.DailyLog, error) {
	logs, err := kv.List[models.DailyLog](ctx, s.store, kv.KeyLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily logs: %w", err)
	}
	return logs, nil
}

func (s *TrackerService) saveLogs(ctx context.Context, logs []models.DailyLog) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyLogs, logs); err != nil {
		return fmt.Errorf("failed to save daily logs: %w", err)
	}
	return nil
}

func addCounter(dst *int, amount *int) {
	if amount == nil || *amount < 0 {
		return
	}
	*dst += *amount
}

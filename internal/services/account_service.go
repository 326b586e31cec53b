package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/nutrition"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/session"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type AccountService struct {
	store   kv.Store
	session *session.Session
	latency time.Duration
	now     func() time.Time
}

func NewAccountService(store kv.Store, sess *session.Session, cfg *config.Config) *AccountService {
	return &AccountService{
		store:   store,
		session: sess,
		latency: cfg.AuthLatency,
		now:     time.Now,
	}
}

// Login signs in by exact email match. There is no credential check. The demo
// accounts are seeded first when no users exist yet.
func (s *AccountService) Login(ctx context.Context, email string) (*models.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		users = demoUsers(s.now().UTC())
		if err := s.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		slog.Info("demo accounts seeded", "count", len(users))
	}

	for i := range users {
		if users[i].Email == email {
			if err := s.session.Begin(ctx, users[i].ID); err != nil {
				return nil, fmt.Errorf("failed to start session: %w", err)
			}
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Register creates an account and makes it current. Admin rights are granted
// to any email containing "admin"; this is a storefront placeholder, not an
// authorization mechanism.
func (s *AccountService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == req.Email {
			return nil, ErrEmailTaken
		}
	}

	allergies := req.Allergies
	if len(allergies) == 0 && req.AllergiesText != "" {
		allergies = splitList(req.AllergiesText)
	}

	now := s.now().UTC()
	user := models.User{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Email:               req.Email,
		Age:                 req.Age,
		Gender:              req.Gender,
		HeightCm:            req.HeightCm,
		WeightKg:            req.WeightKg,
		Goal:                req.Goal,
		ActivityLevel:       req.ActivityLevel,
		Allergies:           nonNil(allergies),
		DislikedIngredients: nonNil(req.DislikedIngredients),
		TDEE:                nutrition.CalculateTDEE(req.WeightKg, req.HeightCm, req.Age, req.Gender, req.ActivityLevel, req.Goal),
		IsAdmin:             strings.Contains(req.Email, "admin"),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.session.Begin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "tdee", user.TDEE)
	return &user, nil
}

// Current returns the signed-in user, or nil when there is no session or the
// session points at a user that no longer exists.
func (s *AccountService) Current(ctx context.Context) (*models.User, error) {
	id, ok, err := s.session.UserID(ctx)
	if err != nil || !ok {
		return nil, err
	}
	user, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

func (s *AccountService) Logout(ctx context.Context) error {
	return s.session.End(ctx)
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateProfile patches the signed-in user. It is a no-op returning (nil, nil)
// without a session.
func (s *AccountService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.User, error) {
	id, ok, err := s.session.UserID(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return s.UpdateProfileFor(ctx, id, req)
}

// UpdateProfileFor merges the present fields into the stored user and
// recomputes the TDEE whenever a metric, goal or activity field is present.
// Unknown users are a no-op returning (nil, nil).
func (s *AccountService) UpdateProfileFor(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	user := users[idx]
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.HeightCm != nil {
		user.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = *req.WeightKg
	}
	if req.Goal != nil {
		user.Goal = *req.Goal
	}
	if req.ActivityLevel != nil {
		user.ActivityLevel = *req.ActivityLevel
	}
	if req.Allergies != nil {
		user.Allergies = req.Allergies
	}
	if req.DislikedIngredients != nil {
		user.DislikedIngredients = req.DislikedIngredients
	}

	if req.TouchesMetrics() {
		user.TDEE = nutrition.CalculateTDEE(user.WeightKg, user.HeightCm, user.Age, user.Gender, user.ActivityLevel, user.Goal)
	}
	user.UpdatedAt = s.now().UTC()

	users[idx] = user
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AccountService) loadUsers(ctx context.Context) ([]models.User, error) {
	users, err := kv.List[models.User](ctx, s.store, kv.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *AccountService) saveUsers(ctx context.Context, users []models.User) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (s *AccountService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func demoUsers(now time.Time) []models.User {
	users := []models.User{
		{
			ID:            "user_demo",
			Name:          "Demo User",
			Email:         "user@fitmeal.com",
			Age:           25,
			Gender:        models.GenderMale,
			HeightCm:      175,
			WeightKg:      70,
			Goal:          models.GoalMaintain,
			ActivityLevel: models.ActivityMedium,
		},
		{
			ID:            "admin_demo",
			Name:          "Admin User",
			Email:         "admin@fitmeal.com",
			Age:           30,
			Gender:        models.GenderFemale,
			HeightCm:      165,
			WeightKg:      60,
			Goal:          models.GoalMaintain,
			ActivityLevel: models.ActivityHigh,
			IsAdmin:       true,
		},
	}
	for i := range users {
		u := &users[i]
		u.Allergies = []string{}
		u.DislikedIngredients = []string{}
		u.TDEE = nutrition.CalculateTDEE(u.WeightKg, u.HeightCm, u.Age, u.Gender, u.ActivityLevel, u.Goal)
		u.CreatedAt = now
		u.UpdatedAt = now
	}
	return users
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

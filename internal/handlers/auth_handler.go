package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/nutrition"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	accounts *services.AccountService
	tokens   *services.TokenService
}

func NewAuthHandler(accounts *services.AccountService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return badRequest(c, "Email is required")
	}

	user, err := h.accounts.Login(c.UserContext(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No account found for this email",
			})
		}
		return internalError(c, "login failed", err)
	}

	return h.respondWithToken(c, fiber.StatusOK, user)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Name and email are required")
	}
	if !req.Gender.Valid() || !req.Goal.Valid() || !req.ActivityLevel.Valid() {
		return badRequest(c, "Gender, goal and activity level are required")
	}

	user, err := h.accounts.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "registration failed", err)
	}

	return h.respondWithToken(c, fiber.StatusCreated, user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.accounts.Logout(c.UserContext()); err != nil {
		return internalError(c, "logout failed", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c, h.accounts)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(user))
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.accounts.UpdateProfileFor(c.UserContext(), userID, &req)
	if err != nil {
		return internalError(c, "profile update failed", err)
	}
	if user == nil {
		return userNotFound(c)
	}
	return c.JSON(profileResponse(user))
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := h.tokens.Issue(user)
	if err != nil {
		return internalError(c, "token issue failed", err)
	}
	return c.Status(status).JSON(dto.AuthResponse{
		AccessToken: token,
		User:        profileResponse(user),
	})
}

func profileResponse(user *models.User) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		User:          *user,
		GoalLabel:     user.Goal.Label(),
		ActivityLabel: user.ActivityLevel.Label(),
		GenderLabel:   user.Gender.Label(),
	}
	if bmi, err := nutrition.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		resp.BMI = &bmi
		resp.BMICategory = nutrition.BMICategory(bmi)
	}
	return resp
}

// currentUser resolves the token subject to a stored user. Its errors are
// rendered by ErrorHandler, so callers return them unchanged.
func currentUser(c *fiber.Ctx, accounts *services.AccountService) (*models.User, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := accounts.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	return user, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func userNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "User not found",
	})
}

func internalError(c *fiber.Ctx, msg string, err error) error {
	slog.Error(msg, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

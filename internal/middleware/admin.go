package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits a request when any of these hold:
// 1. X-Admin-Token matches ADMIN_TOKEN
// 2. the token email is listed in ADMIN_EMAILS
// 3. the stored user has is_admin set
func AdminRequired(accounts *services.AccountService, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		claims, err := Claims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, email) {
			return c.Next()
		}

		// Stored flag, not the claim, so revoking admin takes effect immediately.
		if sub, _ := claims["sub"].(string); sub != "" {
			if user, err := accounts.GetByID(c.UserContext(), sub); err == nil && user.IsAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

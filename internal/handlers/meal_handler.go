package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MealHandler struct {
	catalog *services.CatalogService
}

func NewMealHandler(catalog *services.CatalogService) *MealHandler {
	return &MealHandler{catalog: catalog}
}

// List returns the catalog, optionally filtered with ?type=fit_plus|fit_minus.
func (h *MealHandler) List(c *fiber.Ctx) error {
	mealType := models.MealType(c.Query("type"))
	if mealType != "" && !mealType.Valid() {
		return badRequest(c, "Invalid meal type")
	}

	meals, err := h.catalog.ListByType(c.UserContext(), mealType)
	if err != nil {
		return internalError(c, "meal list failed", err)
	}
	return c.JSON(dto.MealListResponse{Meals: meals, Total: len(meals)})
}

func (h *MealHandler) Get(c *fiber.Ctx) error {
	meal, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			return mealNotFound(c)
		}
		return internalError(c, "meal lookup failed", err)
	}
	return c.JSON(meal)
}

// Create adds a dish from the admin form.
func (h *MealHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}
	if req.Calories < 0 || req.Protein < 0 || req.Carbs < 0 || req.Fat < 0 {
		return badRequest(c, "Nutrition values must not be negative")
	}

	meal, err := h.catalog.Create(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMeal) {
			return badRequest(c, "Nutrition values must not be negative")
		}
		return internalError(c, "meal create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

// Update replaces the whole record stored under :id.
func (h *MealHandler) Update(c *fiber.Ctx) error {
	var meal models.Meal
	if err := c.BodyParser(&meal); err != nil {
		return badRequest(c, "Invalid request body")
	}
	meal.ID = c.Params("id")
	if meal.Name == "" || !meal.Type.Valid() {
		return badRequest(c, "Name and a valid type are required")
	}
	if meal.Calories < 0 || meal.Protein < 0 || meal.Carbs < 0 || meal.Fat < 0 {
		return badRequest(c, "Nutrition values must not be negative")
	}
	if meal.Ingredients == nil {
		meal.Ingredients = []models.Ingredient{}
	}

	if err := h.catalog.Upsert(c.UserContext(), meal); err != nil {
		if errors.Is(err, services.ErrInvalidMeal) {
			return badRequest(c, "Nutrition values must not be negative")
		}
		return internalError(c, "meal update failed", err)
	}
	return c.JSON(meal)
}

func (h *MealHandler) Toggle(c *fiber.Ctx) error {
	meal, err := h.catalog.ToggleActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return internalError(c, "meal toggle failed", err)
	}
	if meal == nil {
		return mealNotFound(c)
	}
	return c.JSON(meal)
}

func mealNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Meal not found",
	})
}

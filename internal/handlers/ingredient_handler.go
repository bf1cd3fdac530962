package handlers

import (
	"log"

	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// IngredientHandler handles HTTP requests for ingredients. The route keeps
// the historical "ingrediant" spelling, which is the published contract.
type IngredientHandler struct {
	service  *services.IngredientService
	validate *validator.Validate
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(service *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the ingredient routes behind the caller's auth
// group.
func (h *IngredientHandler) RegisterRoutes(router fiber.Router) {
	ingredientRoutes := router.Group("/ingrediant")
	ingredientRoutes.Get("/", h.HandleList)
	ingredientRoutes.Post("/", h.HandleCreate)
}

// HandleList lists the requesting user's ingredients, sorted by name
// descending, optionally restricted to assigned ones.
func (h *IngredientHandler) HandleList(c *fiber.Ctx) error {
	user := currentUser(c)
	assignedOnly := c.Query("assigned_only") == "1"

	ingredients, err := h.service.List(user.ID, assignedOnly)
	if err != nil {
		log.Printf("Error listing ingredients for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve ingredients",
		})
	}

	resp := make([]attributeResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		resp = append(resp, attributeResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return c.JSON(resp)
}

// HandleCreate creates an ingredient owned by the requesting user.
func (h *IngredientHandler) HandleCreate(c *fiber.Ctx) error {
	user := currentUser(c)

	var req AttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	ingredient, err := h.service.Create(user.ID, req.Name)
	if err != nil {
		log.Printf("Error creating ingredient for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create ingredient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(attributeResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func ingredientIDs(ingredients []models.Ingredient) []uint {
	ids := make([]uint, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ids = append(ids, ingredient.ID)
	}
	return ids
}

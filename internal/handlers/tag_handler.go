package handlers

import (
	"log"

	"recipebox/internal/models"
	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// attributeResponse is the wire shape for tags and ingredients.
type attributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AttributeRequest represents the request body for creating a tag or an
// ingredient.
type AttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service  *services.TagService
	validate *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService) *TagHandler {
	return &TagHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the tag routes. All of them require auth, applied
// by the caller at the group level.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tag")
	tagRoutes.Get("/", h.HandleList)
	tagRoutes.Post("/", h.HandleCreate)
}

// HandleList lists the requesting user's tags, sorted by name descending.
// With assigned_only=1 only tags referenced by at least one of the user's
// recipes are returned.
func (h *TagHandler) HandleList(c *fiber.Ctx) error {
	user := currentUser(c)
	assignedOnly := c.Query("assigned_only") == "1"

	tags, err := h.service.List(user.ID, assignedOnly)
	if err != nil {
		log.Printf("Error listing tags for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tags",
		})
	}

	resp := make([]attributeResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, attributeResponse{ID: tag.ID, Name: tag.Name})
	}
	return c.JSON(resp)
}

// HandleCreate creates a tag owned by the requesting user.
func (h *TagHandler) HandleCreate(c *fiber.Ctx) error {
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

	tag, err := h.service.Create(user.ID, req.Name)
	if err != nil {
		log.Printf("Error creating tag for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(attributeResponse{ID: tag.ID, Name: tag.Name})
}

func tagIDs(tags []models.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

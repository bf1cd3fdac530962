package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the user resolved by the auth middleware. Handlers are
// only reachable through AuthRequired, so a missing user is a wiring bug.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(middleware.UserContextKey).(*models.User)
	return user
}

// validationFailed writes the field-level 400 response for validator errors.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// parseIDList parses a comma-separated list of integer IDs from a query
// parameter. An empty value yields nil.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ID %q: %w", part, err)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

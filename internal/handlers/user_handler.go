package handlers

import (
	"errors"
	"log"

	"recipebox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for registration, token exchange and the
// authenticated user's own profile.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Create and token exchange are
// public; the profile endpoints sit behind the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/create", h.HandleCreate)
	userRoutes.Post("/token", h.HandleToken)
	userRoutes.Get("/me", auth, h.HandleGetProfile)
	userRoutes.Patch("/me", auth, h.HandleUpdateProfile)
}

// CreateUserRequest represents the request body for registration.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"`
}

// HandleCreate handles new user registration.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.RegisterUser(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrEmailRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"is_active": user.IsActive,
		"is_staff":  user.IsStaff,
	})
}

// TokenRequest represents the request body for the token endpoint.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleToken exchanges credentials for the user's bearer token. Bad or
// missing credentials yield 400 with no token key in the body.
func (h *UserHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.authService.ObtainToken(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unable to authenticate with provided credentials",
			})
		}
		log.Printf("Error obtaining token for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not obtain token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// HandleGetProfile returns the authenticated user's own profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"email": user.Email,
		"name":  user.Name,
	})
}

// UpdateProfileRequest represents the request body for profile updates.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// HandleUpdateProfile updates the authenticated user's name and/or password.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.authService.UpdateProfile(user, req.Name, req.Password); err != nil {
		log.Printf("Error updating profile for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"email": user.Email,
		"name":  user.Name,
	})
}

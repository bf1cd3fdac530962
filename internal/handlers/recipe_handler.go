package handlers

import (
	"errors"
	"io"
	"log"
	"strconv"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"
	"recipebox/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// recipeListResponse is the wire shape for recipes in list views: relations
// are flattened to ID lists.
type recipeListResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingrediants []uint  `json:"ingrediants"`
}

// recipeDetailResponse expands relations to their full serialized form.
type recipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Image       string              `json:"image"`
	Tags        []attributeResponse `json:"tags"`
	Ingrediants []attributeResponse `json:"ingrediants"`
}

func imageURL(recipe *models.Recipe) string {
	if recipe.Image == "" {
		return ""
	}
	return "/media/" + recipe.Image
}

func newRecipeListResponse(recipe *models.Recipe) recipeListResponse {
	return recipeListResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       imageURL(recipe),
		Tags:        tagIDs(recipe.Tags),
		Ingrediants: ingredientIDs(recipe.Ingredients),
	}
}

func newRecipeDetailResponse(recipe *models.Recipe) recipeDetailResponse {
	tags := make([]attributeResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, attributeResponse{ID: tag.ID, Name: tag.Name})
	}
	ingredients := make([]attributeResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, attributeResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return recipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       imageURL(recipe),
		Tags:        tags,
		Ingrediants: ingredients,
	}
}

// RecipeRequest represents the request body for creating a recipe or fully
// replacing one via PUT.
type RecipeRequest struct {
	Title       string   `json:"title" validate:"required"`
	TimeMinutes *int     `json:"time_minutes" validate:"required,gte=0"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Link        string   `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingrediants *[]uint  `json:"ingrediants"`
}

// RecipePatchRequest represents the request body for partial updates.
// Omitted fields, relations included, are left untouched.
type RecipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingrediants *[]uint  `json:"ingrediants"`
}

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the recipe routes behind the caller's auth group.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipe")
	recipeRoutes.Get("/", h.HandleList)
	recipeRoutes.Post("/", h.HandleCreate)
	recipeRoutes.Get("/:id", h.HandleRetrieve)
	recipeRoutes.Put("/:id", h.HandleUpdate)
	recipeRoutes.Patch("/:id", h.HandlePartialUpdate)
	recipeRoutes.Post("/:id/upload-image", h.HandleUploadImage)
}

// HandleList lists the requesting user's recipes, newest first. The tags and
// ingrediants query parameters each carry comma-separated IDs; a recipe must
// match at least one ID from every filter present.
func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	user := currentUser(c)

	filterTags, err := parseIDList(c.Query("tags"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid tags filter",
			"error":   err.Error(),
		})
	}
	filterIngredients, err := parseIDList(c.Query("ingrediants"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ingrediants filter",
			"error":   err.Error(),
		})
	}

	recipes, err := h.service.List(user.ID, filterTags, filterIngredients)
	if err != nil {
		log.Printf("Error listing recipes for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipes",
		})
	}

	resp := make([]recipeListResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, newRecipeListResponse(&recipes[i]))
	}
	return c.JSON(resp)
}

// HandleRetrieve returns the detail view of one of the user's recipes. A
// recipe owned by someone else is indistinguishable from a missing one.
func (h *RecipeHandler) HandleRetrieve(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := recipeID(c)
	if !ok {
		return recipeNotFound(c)
	}

	recipe, err := h.service.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return recipeNotFound(c)
		}
		log.Printf("Error retrieving recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve recipe",
		})
	}

	return c.JSON(newRecipeDetailResponse(recipe))
}

// HandleCreate creates a recipe owned by the requesting user. Any ownership
// field in the payload is ignored.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	user := currentUser(c)

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	input := services.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
	}
	if req.Tags != nil {
		input.TagIDs = *req.Tags
	}
	if req.Ingrediants != nil {
		input.IngredientIDs = *req.Ingrediants
	}

	recipe, err := h.service.Create(user.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReference) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown tag or ingredient ID",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating recipe for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create recipe",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(newRecipeDetailResponse(recipe))
}

// HandleUpdate fully replaces one of the user's recipes. Relations omitted
// from the payload are cleared.
func (h *RecipeHandler) HandleUpdate(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := recipeID(c)
	if !ok {
		return recipeNotFound(c)
	}

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	// A full update replaces everything: missing relation lists mean "none".
	tags := []uint{}
	if req.Tags != nil {
		tags = *req.Tags
	}
	ingredients := []uint{}
	if req.Ingrediants != nil {
		ingredients = *req.Ingrediants
	}
	link := req.Link

	input := services.UpdateRecipeInput{
		Title:         &req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          &link,
		TagIDs:        &tags,
		IngredientIDs: &ingredients,
	}

	return h.applyUpdate(c, user.ID, id, input)
}

// HandlePartialUpdate changes only the supplied fields of one of the user's
// recipes; relations not mentioned stay as they are.
func (h *RecipeHandler) HandlePartialUpdate(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := recipeID(c)
	if !ok {
		return recipeNotFound(c)
	}

	var req RecipePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	input := services.UpdateRecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingrediants,
	}

	return h.applyUpdate(c, user.ID, id, input)
}

func (h *RecipeHandler) applyUpdate(c *fiber.Ctx, userID string, id uint, input services.UpdateRecipeInput) error {
	recipe, err := h.service.Update(userID, id, input)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return recipeNotFound(c)
		}
		if errors.Is(err, services.ErrInvalidReference) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown tag or ingredient ID",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update recipe",
		})
	}

	return c.JSON(newRecipeDetailResponse(recipe))
}

// HandleUploadImage stores an uploaded image for one of the user's recipes.
// Payloads that do not decode as an image yield 400 and leave the recipe
// unchanged.
func (h *RecipeHandler) HandleUploadImage(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := recipeID(c)
	if !ok {
		return recipeNotFound(c)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}

	recipe, err := h.service.UploadImage(user.ID, id, data, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return recipeNotFound(c)
		}
		if errors.Is(err, storage.ErrNotImage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Uploaded file is not a valid image",
			})
		}
		log.Printf("Error uploading image for recipe %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
		})
	}

	return c.JSON(fiber.Map{
		"id":    recipe.ID,
		"image": imageURL(recipe),
	})
}

func recipeID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func recipeNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Recipe not found",
	})
}

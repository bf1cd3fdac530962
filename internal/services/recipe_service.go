package services

import (
	"fmt"
	"log"

	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// EventPublisher publishes recipe lifecycle events to a message broker.
// Implemented by pkg/rabbitmq.Client.
type EventPublisher interface {
	PublishRecipeEvent(event string, payload map[string]interface{}) error
}

// RecipeImageStore persists validated recipe images and returns the stored
// path. Implemented by storage.ImageStore.
type RecipeImageStore interface {
	SaveRecipeImage(data []byte, originalName string) (string, error)
}

// CreateRecipeInput carries the fields for creating a recipe. Ownership is
// never part of the input; the service assigns it from the caller identity.
type CreateRecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// UpdateRecipeInput carries the fields for updating a recipe. A nil field is
// left untouched, which is how PATCH keeps unmentioned relations intact; full
// updates set every field, clearing relations omitted from the payload.
type UpdateRecipeInput struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeService handles business logic for recipes.
type RecipeService struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	images         RecipeImageStore
	publisher      EventPublisher
}

// NewRecipeService creates a new RecipeService. The publisher may be nil, in
// which case events are skipped.
func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	images RecipeImageStore,
	publisher EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		images:         images,
		publisher:      publisher,
	}
}

// List returns the user's recipes ordered by ID descending, optionally
// restricted to recipes referencing any of the given tag/ingredient IDs.
func (s *RecipeService) List(userID string, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	return s.recipeRepo.ListByUser(userID, tagIDs, ingredientIDs)
}

// Get returns one of the user's recipes with relations loaded.
func (s *RecipeService) Get(userID string, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByUser(userID, id)
}

// Create persists a recipe owned by userID. Tag and ingredient IDs are
// validated to exist before anything is written.
func (s *RecipeService) Create(userID string, input CreateRecipeInput) (*models.Recipe, error) {
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(input.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}

	s.publish("recipe.created", recipe)
	return recipe, nil
}

// Update applies input to one of the user's recipes. Nil fields are left
// untouched. Relation pointers that are non-nil replace the recipe's join
// rows wholesale.
func (s *RecipeService) Update(userID string, id uint, input UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByUser(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	var tags *[]models.Tag
	if input.TagIDs != nil {
		resolved, err := s.resolveTags(*input.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}
	var ingredients *[]models.Ingredient
	if input.IngredientIDs != nil {
		resolved, err := s.resolveIngredients(*input.IngredientIDs)
		if err != nil {
			return nil, err
		}
		ingredients = &resolved
	}

	if err := s.recipeRepo.Update(recipe, tags, ingredients); err != nil {
		return nil, err
	}

	// Re-read so the returned recipe reflects the replaced associations.
	updated, err := s.recipeRepo.GetByUser(userID, id)
	if err != nil {
		return nil, err
	}

	s.publish("recipe.updated", updated)
	return updated, nil
}

// UploadImage validates and stores an image for one of the user's recipes,
// then persists the stored path on the recipe. An invalid payload leaves the
// recipe untouched.
func (s *RecipeService) UploadImage(userID string, id uint, data []byte, originalName string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByUser(userID, id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.SaveRecipeImage(data, originalName)
	if err != nil {
		return nil, err
	}

	recipe.Image = path
	if err := s.recipeRepo.Update(recipe, nil, nil); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) resolveTags(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tagRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(dedupe(ids)) {
		return nil, fmt.Errorf("tag: %w", ErrInvalidReference)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(dedupe(ids)) {
		return nil, fmt.Errorf("ingredient: %w", ErrInvalidReference)
	}
	return ingredients, nil
}

// publish sends a lifecycle event if a publisher is configured. Failures
// only log; the write has already committed.
func (s *RecipeService) publish(event string, recipe *models.Recipe) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   recipe.UserID,
		"title":     recipe.Title,
	}
	if err := s.publisher.PublishRecipeEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for recipe %d: %v", event, recipe.ID, err)
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

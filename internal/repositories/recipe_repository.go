package repositories

import "recipebox/internal/models"

// RecipeRepository defines the interface for recipe data access. Every read
// is scoped to an owning user; a recipe belonging to someone else behaves
// exactly like a recipe that does not exist.
type RecipeRepository interface {
	// ListByUser returns the user's recipes ordered by ID descending.
	// Non-empty tagIDs/ingredientIDs each restrict the result to recipes
	// referencing at least one of the listed IDs; both filters intersect.
	ListByUser(userID string, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	GetByUser(userID string, id uint) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	// Update saves the recipe's scalar fields and, for each non-nil
	// association slice, replaces the corresponding join rows. A nil slice
	// leaves that association untouched. The whole write is one transaction.
	Update(recipe *models.Recipe, tags *[]models.Tag, ingredients *[]models.Ingredient) error
}

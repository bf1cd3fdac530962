package repositories

import (
	"errors"
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

// ListByUser returns the user's recipes ordered by ID descending, optionally
// filtered by referenced tag/ingredient IDs.
func (r *GORMRecipeRepository) ListByUser(userID string, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	q := r.db.Preload("Tags").Preload("Ingredients").Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if len(ingredientIDs) > 0 {
		withIngredient := r.db.Table("recipe_ingredients").
			Select("recipe_ingredients.recipe_id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
		q = q.Where("recipes.id IN (?)", withIngredient)
	}

	var recipes []models.Recipe
	if err := q.Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes for user %s: %w", userID, err)
	}
	return recipes, nil
}

// GetByUser retrieves one of the user's recipes with tags and ingredients
// preloaded. A recipe owned by another user yields ErrNotFound.
func (r *GORMRecipeRepository) GetByUser(userID string, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").
		First(&recipe, "recipes.id = ? AND recipes.user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
	}
	return &recipe, nil
}

// Create creates a new recipe along with its join rows in one transaction.
// Referenced tags and ingredients must already exist; their rows are not
// modified here.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if err := r.db.Omit("Tags.*", "Ingredients.*").Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update saves scalar fields and replaces associations for each non-nil
// slice, all within a single transaction so a mid-way failure leaves no
// partial state.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe, tags *[]models.Tag, ingredients *[]models.Ingredient) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if tags != nil {
			assoc := tx.Model(recipe).Association("Tags")
			if len(*tags) == 0 {
				if err := assoc.Clear(); err != nil {
					return fmt.Errorf("failed to clear recipe tags: %w", err)
				}
			} else if err := assoc.Replace(*tags); err != nil {
				return fmt.Errorf("failed to replace recipe tags: %w", err)
			}
		}
		if ingredients != nil {
			assoc := tx.Model(recipe).Association("Ingredients")
			if len(*ingredients) == 0 {
				if err := assoc.Clear(); err != nil {
					return fmt.Errorf("failed to clear recipe ingredients: %w", err)
				}
			} else if err := assoc.Replace(*ingredients); err != nil {
				return fmt.Errorf("failed to replace recipe ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recipe update transaction failed: %w", err)
	}
	return nil
}

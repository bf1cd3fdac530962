package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{
		db: db,
	}
}

// ListByUser returns the user's ingredients ordered by name descending.
func (r *GORMIngredientRepository) ListByUser(userID string, assignedOnly bool) ([]models.Ingredient, error) {
	q := r.db.Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		assigned := r.db.Table("recipe_ingredients").
			Select("recipe_ingredients.ingredient_id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ? AND recipes.deleted_at IS NULL", userID)
		q = q.Where("ingredients.id IN (?)", assigned)
	}

	var ingredients []models.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients for user %s: %w", userID, err)
	}
	return ingredients, nil
}

// Create creates a new ingredient in the database.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// GetByIDs retrieves the ingredients matching the given IDs.
func (r *GORMIngredientRepository) GetByIDs(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to get ingredients by IDs: %w", err)
	}
	return ingredients, nil
}

package repositories

import "recipebox/internal/models"

// IngredientRepository defines the interface for ingredient data access.
type IngredientRepository interface {
	// ListByUser mirrors TagRepository.ListByUser for ingredients.
	ListByUser(userID string, assignedOnly bool) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	GetByIDs(ids []uint) ([]models.Ingredient, error)
}

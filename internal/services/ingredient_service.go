package services

import (
	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// IngredientService handles business logic for user-scoped ingredients. The
// contract is the same shape as TagService.
type IngredientService struct {
	repo repositories.IngredientRepository
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo repositories.IngredientRepository) *IngredientService {
	return &IngredientService{
		repo: repo,
	}
}

// List returns the user's ingredients ordered by name descending.
func (s *IngredientService) List(userID string, assignedOnly bool) ([]models.Ingredient, error) {
	return s.repo.ListByUser(userID, assignedOnly)
}

// Create persists an ingredient owned by the given user.
func (s *IngredientService) Create(userID, name string) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

package services

import (
	"recipebox/internal/models"
	"recipebox/internal/repositories"
)

// TagService handles business logic for user-scoped tags.
type TagService struct {
	repo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository) *TagService {
	return &TagService{
		repo: repo,
	}
}

// List returns the user's tags ordered by name descending. With assignedOnly
// set, only tags attached to at least one of the user's recipes are listed.
func (s *TagService) List(userID string, assignedOnly bool) ([]models.Tag, error) {
	return s.repo.ListByUser(userID, assignedOnly)
}

// Create persists a tag owned by the given user.
func (s *TagService) Create(userID, name string) (*models.Tag, error) {
	tag := &models.Tag{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

package repositories

import "recipebox/internal/models"

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	// ListByUser returns the user's tags ordered by name descending. When
	// assignedOnly is true, only tags attached to at least one of the
	// user's recipes are returned, each exactly once.
	ListByUser(userID string, assignedOnly bool) ([]models.Tag, error)
	Create(tag *models.Tag) error
	GetByIDs(ids []uint) ([]models.Tag, error)
}

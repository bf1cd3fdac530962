package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// ListByUser returns the user's tags ordered by name descending.
func (r *GORMTagRepository) ListByUser(userID string, assignedOnly bool) ([]models.Tag, error) {
	q := r.db.Where("tags.user_id = ?", userID)
	if assignedOnly {
		assigned := r.db.Table("recipe_tags").
			Select("recipe_tags.tag_id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ? AND recipes.deleted_at IS NULL", userID)
		q = q.Where("tags.id IN (?)", assigned)
	}

	var tags []models.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags for user %s: %w", userID, err)
	}
	return tags, nil
}

// Create creates a new tag in the database.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByIDs retrieves the tags matching the given IDs. Missing IDs are not an
// error; callers compare lengths to detect unknown references.
func (r *GORMTagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}
	return tags, nil
}

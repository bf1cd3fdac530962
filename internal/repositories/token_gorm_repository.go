package repositories

import (
	"errors"
	"fmt"

	"recipebox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// Create creates a new token in the database.
func (r *GORMTokenRepository) Create(token *models.Token) error {
	if token.Key == "" {
		token.Key = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// GetByKey retrieves a token by its opaque key.
func (r *GORMTokenRepository) GetByKey(key string) (*models.Token, error) {
	var token models.Token
	if err := r.db.First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token by key: %w", err)
	}
	return &token, nil
}

// GetByUserID retrieves the token owned by the given user.
func (r *GORMTokenRepository) GetByUserID(userID string) (*models.Token, error) {
	var token models.Token
	if err := r.db.First(&token, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get token for user %s: %w", userID, err)
	}
	return &token, nil
}

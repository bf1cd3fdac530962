package repositories

import "recipebox/internal/models"

// TokenRepository defines the interface for auth token data access.
type TokenRepository interface {
	Create(token *models.Token) error
	GetByKey(key string) (*models.Token, error)
	GetByUserID(userID string) (*models.Token, error)
}

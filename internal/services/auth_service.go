package services

import (
	"errors"
	"fmt"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles accounts and bearer token authentication.
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// RegisterUser creates a user with a bcrypt-hashed password. The email is
// lowercased before storage and must not already be registered.
func (s *AuthService) RegisterUser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, false, false)
}

// CreateSuperuser provisions an account with staff and superuser flags set.
func (s *AuthService) CreateSuperuser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, true, true)
}

func (s *AuthService) createUser(email, password, name string, isStaff, isSuperuser bool) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	email = strings.ToLower(email)

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       email,
		Name:        name,
		Password:    string(hashed),
		IsActive:    true,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// CheckPassword verifies a candidate password against the user's stored hash.
func (s *AuthService) CheckPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

// Authenticate resolves email+password to a user. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.CheckPassword(user, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ObtainToken exchanges valid credentials for the user's bearer token,
// creating the token row on first use. Subsequent exchanges return the same
// key; tokens are never rotated.
func (s *AuthService) ObtainToken(email, password string) (string, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokenRepo.GetByUserID(user.ID)
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	token = &models.Token{UserID: user.ID}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}
	return token.Key, nil
}

// UserForToken resolves a bearer token key to its owning user. Unknown keys
// and inactive users are rejected.
func (s *AuthService) UserForToken(key string) (*models.User, error) {
	token, err := s.tokenRepo.GetByKey(key)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile changes the user's name and/or password. A nil field is left
// untouched; a new password is re-hashed before storage.
func (s *AuthService) UpdateProfile(user *models.User, name, password *string) error {
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

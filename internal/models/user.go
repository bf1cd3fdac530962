package models

import "time"

// User represents an account in the system. Email is the login identifier
// and is always stored lowercased.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name        string    `json:"name" gorm:"type:varchar(255)"`
	Password    string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never the plaintext
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

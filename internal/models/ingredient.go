package models

import "gorm.io/gorm"

// Ingredient is a user-scoped ingredient that can be attached to recipes.
// Like tags, names may repeat across users.
type Ingredient struct {
	gorm.Model
	Name   string `json:"name" gorm:"type:varchar(255)" validate:"required"`
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`
}

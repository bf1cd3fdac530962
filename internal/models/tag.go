package models

import "gorm.io/gorm"

// Tag is a user-scoped label that can be attached to recipes. Names are not
// globally unique; two users may each have a "vegan" tag.
type Tag struct {
	gorm.Model
	Name   string `json:"name" gorm:"type:varchar(255)" validate:"required"`
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`
}

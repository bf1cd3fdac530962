package models

import "gorm.io/gorm"

// Recipe is the aggregate entity: owned by exactly one user, referencing any
// number of tags and ingredients through join tables, with an optional image.
type Recipe struct {
	gorm.Model
	Title       string       `json:"title" gorm:"type:varchar(255)" validate:"required"`
	TimeMinutes int          `json:"time_minutes" validate:"gte=0"`
	Price       float64      `json:"price" gorm:"type:decimal(5,2)" validate:"gte=0"`
	Link        string       `json:"link" gorm:"type:varchar(255)"`
	Image       string       `json:"image" gorm:"type:varchar(255)"` // path relative to the media root
	UserID      string       `json:"user_id" gorm:"index;type:varchar(36)"`
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `json:"ingrediants" gorm:"many2many:recipe_ingredients;"`
}

package models

import "time"

// Token is the opaque bearer token for a user. Each user has at most one
// token; repeated credential exchanges hand back the same key.
type Token struct {
	Key       string    `json:"token" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// User is a signed-in member of the gallery
type User struct {
	ID          string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Email       string    `json:"email,omitempty" db:"email" gorm:"type:text;uniqueIndex"`
	Username    string    `json:"username" db:"username" gorm:"type:text;not null"`
	DisplayName string    `json:"display_name" db:"display_name" gorm:"type:text;not null"`
	AvatarURL   *string   `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

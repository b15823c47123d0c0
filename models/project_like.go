package models

import "time"

// ProjectLike records that a user liked a project; at most one per pair
type ProjectLike struct {
	ProjectID string    `json:"project_id" db:"project_id" gorm:"type:text;primaryKey"`
	UserID    string    `json:"user_id" db:"user_id" gorm:"type:text;primaryKey"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

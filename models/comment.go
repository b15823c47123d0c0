package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a message left on a project
type Comment struct {
	ID        string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	ProjectID string    `json:"project_id" db:"project_id" gorm:"type:text;not null;index:idx_comment_project_created"`
	UserID    string    `json:"user_id" db:"user_id" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index:idx_comment_project_created"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a submitted web project shown in the gallery
type Project struct {
	ID           string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string    `json:"description" db:"description" gorm:"type:text;not null"`
	DeployURL    string    `json:"deploy_url" db:"deploy_url" gorm:"type:text;not null"`
	GithubURL    *string   `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url" gorm:"type:text"`
	AuthorName   string    `json:"author_name,omitempty" db:"author_name" gorm:"type:text"`
	CategoryID   *uint     `json:"category_id,omitempty" db:"category_id" gorm:"index"`
	EventID      *uint     `json:"event_id,omitempty" db:"event_id" gorm:"index"`
	LicenseID    *uint     `json:"license_id,omitempty" db:"license_id"`
	UserID       string    `json:"user_id" db:"user_id" gorm:"type:text;index;not null"`
	ViewCount    int64     `json:"view_count" db:"view_count" gorm:"not null;default:0;check:view_count >= 0"`
	LikeCount    int64     `json:"like_count" db:"like_count" gorm:"not null;default:0;check:like_count >= 0"`
	CommentCount int64     `json:"comment_count" db:"comment_count" gorm:"not null;default:0;check:comment_count >= 0"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Event    *Event    `json:"event,omitempty" gorm:"foreignKey:EventID;references:ID"`
	License  *License  `json:"license,omitempty" gorm:"foreignKey:LicenseID;references:ID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// BeforeCreate assigns a random id to projects submitted without one.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AuthorDisplayName is the nickname shown on cards: the project's own
// author name when set, otherwise the submitter's display name.
func (p Project) AuthorDisplayName() string {
	if p.AuthorName != "" {
		return p.AuthorName
	}
	if p.User != nil && p.User.DisplayName != "" {
		return p.User.DisplayName
	}
	return "익명"
}

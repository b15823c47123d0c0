package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByProject returns a project's comments, oldest first
func (r *CommentRepo) FindByProject(ctx context.Context, projectID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "display_name", "avatar_url")
		}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Add stores the comment and bumps the project's comment_count together.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id").First(&project, "id = ?", comment.ProjectID).Error; err != nil {
			return err
		}
		if err := tx.Omit("User", "Project").Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", comment.ProjectID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "display_name", "avatar_url")
		}).
		First(comment, "id = ?", comment.ID).Error
}

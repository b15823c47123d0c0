package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// withAssociations loads what a gallery card shows. Only public user
// columns are selected.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Event").
		Preload("License").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "display_name", "avatar_url")
		})
}

// FindAll returns every project, newest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := withAssociations(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithOwner is FindByID including the owner's e-mail address.
func (r *ProjectRepo) FindByIDWithOwner(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("User").First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database. Counters always start at zero.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	project.ViewCount = 0
	project.LikeCount = 0
	project.CommentCount = 0
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// Update writes the editable fields of project. Counters and ownership are
// left untouched.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	res := r.db.WithContext(ctx).
		Model(&models.Project{ID: project.ID}).
		Select("title", "description", "deploy_url", "github_url", "thumbnail_url",
			"author_name", "category_id", "event_id", "license_id").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews adds one view and returns the new total.
func (r *ProjectRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Project{}).Where("id = ?", id).Pluck("view_count", &views).Error
	})
	return views, err
}

// HasLiked reports whether userID currently likes the project.
func (r *ProjectRepo) HasLiked(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectLike{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// LikedProjectIDs returns the ids of the projects userID likes.
func (r *ProjectRepo) LikedProjectIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.ProjectLike{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	return ids, err
}

// ToggleLike likes the project for userID, or removes the like when one
// exists. The like row and like_count change in one transaction and the
// count never drops below zero.
func (r *ProjectRepo) ToggleLike(ctx context.Context, projectID, userID string) (liked bool, likeCount int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id").First(&project, "id = ?", projectID).Error; err != nil {
			return err
		}

		res := tx.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectLike{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			err := tx.Model(&models.Project{}).
				Where("id = ? AND like_count > 0", projectID).
				UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
			if err != nil {
				return err
			}
		} else {
			liked = true
			if err := tx.Create(&models.ProjectLike{ProjectID: projectID, UserID: userID}).Error; err != nil {
				return err
			}
			err := tx.Model(&models.Project{}).
				Where("id = ?", projectID).
				UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&models.Project{}).Where("id = ?", projectID).Pluck("like_count", &likeCount).Error
	})
	return liked, likeCount, err
}

package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByEmail returns the member signed in with email, creating
// one on first sign-in. The display name and avatar follow the identity
// provider on every sign-in.
func (r *UserRepo) FindOrCreateByEmail(ctx context.Context, email, displayName string, avatarURL *string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"avatar_url": avatarURL}
		if displayName != "" {
			updates["display_name"] = displayName
			user.DisplayName = displayName
		}
		user.AvatarURL = avatarURL
		if err := r.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		username, _, _ := strings.Cut(email, "@")
		if displayName == "" {
			displayName = username
		}
		user = models.User{
			ID:          uuid.NewString(),
			Email:       email,
			Username:    username,
			DisplayName: displayName,
			AvatarURL:   avatarURL,
		}
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, err
	}
}

package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns categories in display order
func (r *CategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("id ASC").Find(&categories).Error
	return categories, err
}

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db}
}

// FindAll returns events, newest first. With activeOnly set, closed events
// are left out.
func (r *EventRepo) FindAll(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx).Order("id DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&events).Error
	return events, err
}

type LicenseRepo struct {
	db *gorm.DB
}

func NewLicenseRepo(db *gorm.DB) *LicenseRepo {
	return &LicenseRepo{db}
}

func (r *LicenseRepo) FindAll(ctx context.Context) ([]models.License, error) {
	var licenses []models.License
	err := r.db.WithContext(ctx).Order("id ASC").Find(&licenses).Error
	return licenses, err
}

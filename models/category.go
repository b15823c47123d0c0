package models

// Category is a static topic a project is filed under
type Category struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name         string `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Icon         string `json:"icon" db:"icon" gorm:"type:text;not null"`
	DisplayOrder int    `json:"display_order" db:"display_order" gorm:"not null;default:0"`
}

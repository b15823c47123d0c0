package models

// Event is a workshop or hackathon a project was made for
type Event struct {
	ID       uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name     string `json:"name" db:"name" gorm:"type:text;not null"`
	IsActive bool   `json:"is_active" db:"is_active" gorm:"not null;default:true"`
}

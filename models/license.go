package models

// License describes the terms a project is shared under
type License struct {
	ID                 uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name               string `json:"name" db:"name" gorm:"type:text;not null"`
	ShortName          string `json:"short_name" db:"short_name" gorm:"type:text;not null;unique"`
	Description        string `json:"description" db:"description" gorm:"type:text"`
	URL                string `json:"url" db:"url" gorm:"type:text"`
	AllowCommercial    bool   `json:"allow_commercial" db:"allow_commercial"`
	RequireAttribution bool   `json:"require_attribution" db:"require_attribution"`
	AllowModification  bool   `json:"allow_modification" db:"allow_modification"`
}

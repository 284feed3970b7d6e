package models

import "time"

type Product struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CategoryID      *uint     `gorm:"index" json:"category_id"` // nil -> sem categoria ("outros")
	Category        *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        *string   `gorm:"type:varchar(255)" json:"image_url"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	Popular         bool      `gorm:"not null;default:false" json:"popular"`
	PrepTimeMinutes int       `gorm:"not null;default:15" json:"prep_time_minutes"`
	DietaryTags     string    `gorm:"type:text" json:"dietary_tags"` // JSON array de restrições ("vegano", "sem gluten", ...)
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

// Table status values
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableDirty     = "dirty"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"` // uuid impresso no QR da mesa
	Number    string    `gorm:"type:varchar(50);not null" json:"number"`
	Status    string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

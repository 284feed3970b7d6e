package models

import "time"

// WaiterCall status values
const (
	CallPending      = "pending"
	CallAcknowledged = "acknowledged"
	CallResolved     = "resolved"
)

type WaiterCall struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   uint      `gorm:"not null;index" json:"table_id"`
	Table     Table     `gorm:"foreignKey:TableID" json:"table"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

// Order status values. Orders move confirmed -> preparing -> delivered,
// and are marked closed when the table's bill is settled.
const (
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderClosed    = "closed"
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	TableID        uint        `gorm:"not null;index" json:"table_id"`
	Table          Table       `gorm:"foreignKey:TableID" json:"table"`
	Status         string      `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	TotalAmount    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	GeneralNotes   *string     `gorm:"type:text" json:"general_notes,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

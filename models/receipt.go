package models

import "time"

// Receipt records a billing closeout for a table: which orders were
// settled, the totals and, when the bill was split, the per-person
// breakdown (JSON produced by the billing package).
type Receipt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReceiptNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"receipt_number"`
	TableID       uint      `gorm:"not null;index" json:"table_id"`
	Table         Table     `gorm:"foreignKey:TableID" json:"table"`
	OrderIDs      string    `gorm:"type:text" json:"order_ids"` // JSON array
	Subtotal      float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ServiceFee    float64   `gorm:"type:decimal(10,2);not null" json:"service_fee"`
	Total         float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	Participants  int       `gorm:"not null;default:1" json:"participants"`
	Breakdown     string    `gorm:"type:text" json:"breakdown"` // JSON per-person amounts
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

package models

import "time"

// CartRecord holds the open cart of a table as a raw JSON array of line
// items, keyed by the table's uuid code. The payload is opaque at this
// level; cart.Store owns the encoding.
type CartRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableCode string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"table_code"`
	Items     string    `gorm:"type:text" json:"items"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

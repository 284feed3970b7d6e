// Package cart persists the open cart of each table as a JSON-encoded
// array of line items keyed by the table's uuid code.
package cart

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
	"github.com/ordena-app/ordena/wire"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Get returns the cart of a table. A missing record or a corrupt JSON
// payload is treated as an empty cart, never as an error.
func (s *Store) Get(tableCode string) []wire.CartLineItem {
	var record models.CartRecord
	if err := s.DB.Where("table_code = ?", tableCode).First(&record).Error; err != nil {
		return []wire.CartLineItem{}
	}

	var items []wire.CartLineItem
	if err := json.Unmarshal([]byte(record.Items), &items); err != nil {
		// Carrinho corrompido é descartado, não propaga erro
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("discarding corrupt cart for table %s: %v", tableCode, err)
		}
		return []wire.CartLineItem{}
	}
	if items == nil {
		items = []wire.CartLineItem{}
	}
	return items
}

// Put replaces the cart of a table.
func (s *Store) Put(tableCode string, items []wire.CartLineItem) error {
	if items == nil {
		items = []wire.CartLineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	var record models.CartRecord
	err = s.DB.Where("table_code = ?", tableCode).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.CartRecord{
			TableCode: tableCode,
			Items:     string(payload),
			UpdatedAt: time.Now(),
		}
		return s.DB.Create(&record).Error
	}
	if err != nil {
		return err
	}

	record.Items = string(payload)
	record.UpdatedAt = time.Now()
	return s.DB.Save(&record).Error
}

// Clear empties the cart of a table, e.g. after a successful order.
func (s *Store) Clear(tableCode string) error {
	return s.DB.Where("table_code = ?", tableCode).Delete(&models.CartRecord{}).Error
}

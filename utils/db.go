package utils

import (
	"sync"

	"gorm.io/gorm"
)

// Shared gorm handle for code paths that run outside a controller, like
// the snapshot pushed when a dashboard websocket connects.
var (
	dbConn *gorm.DB
	dbOnce sync.Once
	dbMu   sync.RWMutex
)

// InitDB stores the handle opened in main. The first call wins; later
// calls are no-ops.
func InitDB(database *gorm.DB) {
	dbOnce.Do(func() {
		dbMu.Lock()
		defer dbMu.Unlock()
		dbConn = database
	})
}

// GetDB returns the shared handle, nil before InitDB.
func GetDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return dbConn
}

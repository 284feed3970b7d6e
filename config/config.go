package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database configured by DB_DRIVER/DB_DSN.
// MySQL in production; sqlite (default ordena.db) for development.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
				os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "ordena.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// ServiceFeeRate returns the configured service fee rate (default 10%).
func ServiceFeeRate() float64 {
	raw := os.Getenv("SERVICE_FEE_RATE")
	if raw == "" {
		return 0.1
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return 0.1
	}
	return rate
}

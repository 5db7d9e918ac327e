package config

import (
	"fmt"

	"ambasphere-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "ambasphere"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	if err := Migrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	DB = db
}

// Migrate creates or updates every table. Split out so tests can run it
// against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.Allocation{},
		&model.Staff{},
		&model.Package{},
		&model.Contract{},
		&model.Handset{},
		&model.Notification{},
		&model.Event{},
		&model.EmailOutbox{},
		&model.ReminderLog{},
	)
}

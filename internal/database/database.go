package database

import (
	"log"

	"github.com/hoanglong2311/telebot/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the process-local store database. State lives in an in-memory
// SQLite database and is lost on restart.
func New() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps the shared in-memory database alive and
	// serialises access from the scheduler and webhook goroutines.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.TargetDate{}, &model.HealthProfile{}, &model.WaterCounter{}); err != nil {
		return nil, err
	}

	log.Printf("database: using in-memory SQLite, state is volatile")
	return db, nil
}

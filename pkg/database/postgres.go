package database

import (
	"log"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Venue{},
		&models.Stand{},
		&models.Slot{},
		&models.Link{},
		&models.Reservation{},
		&models.Info{},
		&models.Contract{},
		&models.EditionConfig{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one non-cancelled reservation per
	// company per edition, the database-side half of the single-active
	// invariant.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active
		ON reservations (company_id, edition)
		WHERE feedback_status <> 'cancelled'
	`)

	return db
}

//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "expo_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.Venue{},
		&models.Stand{},
		&models.Slot{},
		&models.Link{},
		&models.Reservation{},
		&models.Info{},
		&models.Contract{},
		&models.EditionConfig{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active
		ON reservations (company_id, edition)
		WHERE feedback_status <> 'cancelled'
	`)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	for _, table := range []string{
		"reservations", "links", "slots", "stands", "venues",
		"infos", "contracts", "edition_configs",
	} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}
}

func cleanTables() {
	testDB.Exec("DELETE FROM reservations")
	testDB.Exec("DELETE FROM links")
	testDB.Exec("DELETE FROM slots")
	testDB.Exec("DELETE FROM stands")
	testDB.Exec("DELETE FROM venues")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

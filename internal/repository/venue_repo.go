package repository

import (
	"context"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	FindByEdition(ctx context.Context, edition string) (*models.Venue, error)
	FindByEditionForUpdate(ctx context.Context, tx *gorm.DB, edition string) (*models.Venue, error)
	AddStand(ctx context.Context, tx *gorm.DB, stand *models.Stand) error
	AddSlot(ctx context.Context, tx *gorm.DB, slot *models.Slot) error
	GetDB() *gorm.DB
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *venueRepository) Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return tx.WithContext(ctx).Create(venue).Error
}

func withResources(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Stands", func(db *gorm.DB) *gorm.DB { return db.Order("resource_id ASC") }).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("kind ASC, resource_id ASC") })
}

func (r *venueRepository) FindByEdition(ctx context.Context, edition string) (*models.Venue, error) {
	var venue models.Venue
	if err := withResources(r.db.WithContext(ctx)).
		Where("edition = ?", edition).
		First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByEditionForUpdate locks the venue row within the given transaction.
// Every booking-affecting operation for an edition takes this lock first,
// which serializes concurrent submissions and closes the
// validate-then-write race.
func (r *venueRepository) FindByEditionForUpdate(ctx context.Context, tx *gorm.DB, edition string) (*models.Venue, error) {
	var venue models.Venue
	if err := withResources(tx.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("edition = ?", edition).
		First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) AddStand(ctx context.Context, tx *gorm.DB, stand *models.Stand) error {
	return tx.WithContext(ctx).Create(stand).Error
}

func (r *venueRepository) AddSlot(ctx context.Context, tx *gorm.DB, slot *models.Slot) error {
	return tx.WithContext(ctx).Create(slot).Error
}

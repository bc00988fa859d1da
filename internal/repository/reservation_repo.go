package repository

import (
	"context"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationFilter narrows List results. Zero values mean "any"; with
// LatestOnly set, only each company's highest-sequence entry is returned.
type ReservationFilter struct {
	CompanyID  string
	Edition    string
	LatestOnly bool
}

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	Save(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	FindLatest(ctx context.Context, tx *gorm.DB, companyID, edition string) (*models.Reservation, error)
	FindLatestForUpdate(ctx context.Context, tx *gorm.DB, companyID, edition string) (*models.Reservation, error)
	FindActiveByEdition(ctx context.Context, tx *gorm.DB, edition string) ([]models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return tx.WithContext(ctx).Create(res).Error
}

func (r *reservationRepository) Save(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return tx.WithContext(ctx).Save(res).Error
}

func (r *reservationRepository) FindLatest(ctx context.Context, tx *gorm.DB, companyID, edition string) (*models.Reservation, error) {
	return r.findLatest(ctx, tx, companyID, edition, false)
}

func (r *reservationRepository) FindLatestForUpdate(ctx context.Context, tx *gorm.DB, companyID, edition string) (*models.Reservation, error) {
	return r.findLatest(ctx, tx, companyID, edition, true)
}

func (r *reservationRepository) findLatest(ctx context.Context, tx *gorm.DB, companyID, edition string, lock bool) (*models.Reservation, error) {
	q := tx.WithContext(ctx).
		Where("company_id = ? AND edition = ?", companyID, edition).
		Order("seq_id DESC")
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var res models.Reservation
	if err := q.First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// FindActiveByEdition returns every non-cancelled reservation for an
// edition. By the single-active invariant these are each company's latest
// entries, so together they are exactly the occupying set.
func (r *reservationRepository) FindActiveByEdition(ctx context.Context, tx *gorm.DB, edition string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := tx.WithContext(ctx).
		Where("edition = ? AND feedback_status <> ?", edition, models.StatusCancelled).
		Order("company_id ASC, seq_id ASC").
		Find(&out).Error
	return out, err
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if filter.CompanyID != "" {
		q = q.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Edition != "" {
		q = q.Where("edition = ?", filter.Edition)
	}

	var all []models.Reservation
	if err := q.Order("company_id ASC, edition ASC, seq_id ASC").Find(&all).Error; err != nil {
		return nil, err
	}
	if !filter.LatestOnly {
		return all, nil
	}

	// Rows arrive grouped by (company, edition) in seq order, so the last
	// entry of each group is the latest.
	var latest []models.Reservation
	for i := range all {
		if i+1 < len(all) &&
			all[i+1].CompanyID == all[i].CompanyID &&
			all[i+1].Edition == all[i].Edition {
			continue
		}
		latest = append(latest, all[i])
	}
	return latest, nil
}

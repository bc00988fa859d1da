package repository

import (
	"context"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepository interface {
	Upsert(ctx context.Context, link *models.Link) error
	FindByCompanyAndEdition(ctx context.Context, companyID, edition string) (*models.Link, error)
	Invalidate(ctx context.Context, companyID, edition string) error
}

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// Upsert inserts the link or, when the (company, edition) pair already has
// one, replaces its grant and token. Re-issuing a link is how an expired
// or revoked company gets back in.
func (r *linkRepository) Upsert(ctx context.Context, link *models.Link) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "edition"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token", "valid", "participation_days", "activities", "expires_at", "updated_at",
		}),
	}).Create(link).Error
}

func (r *linkRepository) FindByCompanyAndEdition(ctx context.Context, companyID, edition string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND edition = ?", companyID, edition).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Invalidate(ctx context.Context, companyID, edition string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("company_id = ? AND edition = ?", companyID, edition).
		Update("valid", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

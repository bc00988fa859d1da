package repository

import (
	"context"

	"github.com/expohall/expo-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyRecordRepository persists the reservation-adjacent records (info,
// contract, edition config). One row per (company, edition) each.
type CompanyRecordRepository interface {
	UpsertInfo(ctx context.Context, info *models.Info) error
	FindInfo(ctx context.Context, companyID, edition string) (*models.Info, error)
	SaveInfo(ctx context.Context, info *models.Info) error

	UpsertContract(ctx context.Context, contract *models.Contract) error
	FindContract(ctx context.Context, companyID, edition string) (*models.Contract, error)
	SaveContract(ctx context.Context, contract *models.Contract) error

	UpsertConfig(ctx context.Context, cfg *models.EditionConfig) error
	FindConfig(ctx context.Context, companyID, edition string) (*models.EditionConfig, error)
}

type companyRecordRepository struct {
	db *gorm.DB
}

func NewCompanyRecordRepository(db *gorm.DB) CompanyRecordRepository {
	return &companyRecordRepository{db: db}
}

func companyEditionConflict(updates ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "edition"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}
}

func (r *companyRecordRepository) UpsertInfo(ctx context.Context, info *models.Info) error {
	return r.db.WithContext(ctx).
		Clauses(companyEditionConflict("data", "feedback_status", "feedback_member", "updated_at")).
		Create(info).Error
}

func (r *companyRecordRepository) FindInfo(ctx context.Context, companyID, edition string) (*models.Info, error) {
	var info models.Info
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND edition = ?", companyID, edition).
		First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *companyRecordRepository) SaveInfo(ctx context.Context, info *models.Info) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *companyRecordRepository) UpsertContract(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).
		Clauses(companyEditionConflict("signed", "feedback_status", "feedback_member", "updated_at")).
		Create(contract).Error
}

func (r *companyRecordRepository) FindContract(ctx context.Context, companyID, edition string) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND edition = ?", companyID, edition).
		First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *companyRecordRepository) SaveContract(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *companyRecordRepository) UpsertConfig(ctx context.Context, cfg *models.EditionConfig) error {
	return r.db.WithContext(ctx).
		Clauses(companyEditionConflict("flags", "feedback_status", "feedback_member", "updated_at")).
		Create(cfg).Error
}

func (r *companyRecordRepository) FindConfig(ctx context.Context, companyID, edition string) (*models.EditionConfig, error) {
	var cfg models.EditionConfig
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND edition = ?", companyID, edition).
		First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

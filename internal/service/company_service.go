package service

import (
	"context"
	"errors"

	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("company record not found")

// CompanyRecordService manages the reservation-adjacent records. They
// reuse the reservation feedback rules (idempotent confirm, terminal
// cancel) but never touch venue availability.
type CompanyRecordService interface {
	SubmitInfo(ctx context.Context, companyID, edition, data string) (*models.Info, error)
	ConfirmInfo(ctx context.Context, companyID, edition, member string) (*models.Info, error)
	CancelInfo(ctx context.Context, companyID, edition, member string) (*models.Info, error)

	SubmitContract(ctx context.Context, companyID, edition string, signed bool) (*models.Contract, error)
	ConfirmContract(ctx context.Context, companyID, edition, member string) (*models.Contract, error)
	CancelContract(ctx context.Context, companyID, edition, member string) (*models.Contract, error)

	SetFlag(ctx context.Context, companyID, edition, flag string, value bool) (*models.EditionConfig, error)
}

type companyRecordService struct {
	repo repository.CompanyRecordRepository
}

func NewCompanyRecordService(repo repository.CompanyRecordRepository) CompanyRecordService {
	return &companyRecordService{repo: repo}
}

func (s *companyRecordService) SubmitInfo(ctx context.Context, companyID, edition, data string) (*models.Info, error) {
	info := &models.Info{
		CompanyID: companyID,
		Edition:   edition,
		Data:      data,
		Feedback:  models.Feedback{Status: models.StatusPending},
	}
	if err := s.repo.UpsertInfo(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *companyRecordService) ConfirmInfo(ctx context.Context, companyID, edition, member string) (*models.Info, error) {
	info, err := s.repo.FindInfo(ctx, companyID, edition)
	if err != nil {
		return nil, mapRecordErr(err)
	}
	fb, err := info.Feedback.Confirm(member)
	if err != nil {
		return nil, err
	}
	if fb.Status == info.Feedback.Status {
		return info, nil
	}
	info.Feedback = fb
	if err := s.repo.SaveInfo(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *companyRecordService) CancelInfo(ctx context.Context, companyID, edition, member string) (*models.Info, error) {
	info, err := s.repo.FindInfo(ctx, companyID, edition)
	if err != nil {
		return nil, mapRecordErr(err)
	}
	fb, err := info.Feedback.Cancel(member)
	if err != nil {
		return nil, err
	}
	info.Feedback = fb
	if err := s.repo.SaveInfo(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *companyRecordService) SubmitContract(ctx context.Context, companyID, edition string, signed bool) (*models.Contract, error) {
	contract := &models.Contract{
		CompanyID: companyID,
		Edition:   edition,
		Signed:    signed,
		Feedback:  models.Feedback{Status: models.StatusPending},
	}
	if err := s.repo.UpsertContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *companyRecordService) ConfirmContract(ctx context.Context, companyID, edition, member string) (*models.Contract, error) {
	contract, err := s.repo.FindContract(ctx, companyID, edition)
	if err != nil {
		return nil, mapRecordErr(err)
	}
	fb, err := contract.Feedback.Confirm(member)
	if err != nil {
		return nil, err
	}
	if fb.Status == contract.Feedback.Status {
		return contract, nil
	}
	contract.Feedback = fb
	if err := s.repo.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *companyRecordService) CancelContract(ctx context.Context, companyID, edition, member string) (*models.Contract, error) {
	contract, err := s.repo.FindContract(ctx, companyID, edition)
	if err != nil {
		return nil, mapRecordErr(err)
	}
	fb, err := contract.Feedback.Cancel(member)
	if err != nil {
		return nil, err
	}
	contract.Feedback = fb
	if err := s.repo.SaveContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *companyRecordService) SetFlag(ctx context.Context, companyID, edition, flag string, value bool) (*models.EditionConfig, error) {
	cfg, err := s.repo.FindConfig(ctx, companyID, edition)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cfg = &models.EditionConfig{
			CompanyID: companyID,
			Edition:   edition,
			Flags:     models.FeatureFlags{},
			Feedback:  models.Feedback{Status: models.StatusPending},
		}
	}
	if cfg.Flags == nil {
		cfg.Flags = models.FeatureFlags{}
	}
	cfg.Flags[flag] = value
	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mapRecordErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

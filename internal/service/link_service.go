package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expohall/expo-booking-service/internal/auth"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidGrant = errors.New("link grant is malformed")

type LinkService interface {
	Create(ctx context.Context, companyID, edition string, participationDays int, activities models.Activities, ttl time.Duration) (*models.Link, error)
	Revoke(ctx context.Context, companyID, edition string) error
	Verify(ctx context.Context, token string) (*models.Link, error)
}

type linkService struct {
	linkRepo repository.LinkRepository
	secret   string
}

func NewLinkService(linkRepo repository.LinkRepository, secret string) LinkService {
	return &linkService{linkRepo: linkRepo, secret: secret}
}

// Create issues (or re-issues) the capability grant for a company and
// edition. Re-issuing replaces the previous token and revalidates the link.
func (s *linkService) Create(ctx context.Context, companyID, edition string, participationDays int, activities models.Activities, ttl time.Duration) (*models.Link, error) {
	if participationDays < 0 {
		return nil, fmt.Errorf("%w: negative participation days", ErrInvalidGrant)
	}
	for _, kind := range activities {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: unknown activity kind %q", ErrInvalidGrant, kind)
		}
	}

	expiresAt := time.Now().Add(ttl)
	token, err := auth.NewLinkToken(s.secret, companyID, edition, expiresAt)
	if err != nil {
		return nil, err
	}

	link := &models.Link{
		CompanyID:         companyID,
		Edition:           edition,
		Token:             token,
		Valid:             true,
		ParticipationDays: participationDays,
		Activities:        activities,
		ExpiresAt:         expiresAt,
	}
	if err := s.linkRepo.Upsert(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *linkService) Revoke(ctx context.Context, companyID, edition string) error {
	err := s.linkRepo.Invalidate(ctx, companyID, edition)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLinkNotFound
	}
	return err
}

// Verify resolves a bearer token to its stored link. The token must parse
// and match the stored one, and the link must still be valid and unexpired.
func (s *linkService) Verify(ctx context.Context, token string) (*models.Link, error) {
	claims, err := auth.ParseLinkToken(s.secret, token)
	if err != nil {
		return nil, ErrLinkInvalid
	}

	link, err := s.linkRepo.FindByCompanyAndEdition(ctx, claims.CompanyID, claims.Edition)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if link.Token != token || !link.Usable(time.Now()) {
		return nil, ErrLinkInvalid
	}
	return link, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/expohall/expo-booking-service/internal/availability"
	"github.com/expohall/expo-booking-service/internal/cache"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"github.com/expohall/expo-booking-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrNoVenue             = errors.New("no venue exists for this edition")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationLocked   = errors.New("reservation is confirmed and can no longer be modified")
	ErrLinkNotFound        = errors.New("no link exists for this company and edition")
	ErrLinkInvalid         = errors.New("link is revoked or expired")
)

type ReservationService interface {
	Submit(ctx context.Context, companyID, edition string, stands models.StandBookings, activities []models.ActivityClaim) (*models.Reservation, error)
	Confirm(ctx context.Context, companyID, edition, member string) (*models.Reservation, error)
	Cancel(ctx context.Context, companyID, edition, member string) (*models.Reservation, error)
	List(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	venueRepo       repository.VenueRepository
	linkRepo        repository.LinkRepository
	publisher       *rabbitmq.Publisher
	cache           *cache.AvailabilityCache
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	venueRepo repository.VenueRepository,
	linkRepo repository.LinkRepository,
	publisher *rabbitmq.Publisher,
	availCache *cache.AvailabilityCache,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		venueRepo:       venueRepo,
		linkRepo:        linkRepo,
		publisher:       publisher,
		cache:           availCache,
	}
}

func (s *reservationService) Submit(ctx context.Context, companyID, edition string, stands models.StandBookings, activities []models.ActivityClaim) (*models.Reservation, error) {
	link, err := s.linkRepo.FindByCompanyAndEdition(ctx, companyID, edition)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if !link.Usable(time.Now()) {
		return nil, ErrLinkInvalid
	}

	var result *models.Reservation
	err = s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the venue row — serializes concurrent submissions for
		// the edition, so validation and write happen atomically.
		venue, err := s.venueRepo.FindByEditionForUpdate(ctx, tx, edition)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoVenue
			}
			return err
		}

		// 2. Read the company's latest ledger entry and decide the transition.
		latest, err := s.reservationRepo.FindLatest(ctx, tx, companyID, edition)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if latest != nil && latest.Feedback.Status == models.StatusConfirmed {
			return ErrReservationLocked
		}

		// 3. Validate against availability computed from everyone else's
		// active reservations; the requester's own entry is superseded by
		// this submission.
		active, err := s.reservationRepo.FindActiveByEdition(ctx, tx, edition)
		if err != nil {
			return err
		}
		var confirmed, pending []models.Reservation
		for _, r := range active {
			if r.CompanyID == companyID {
				continue
			}
			if r.Feedback.Status == models.StatusConfirmed {
				confirmed = append(confirmed, r)
			} else {
				pending = append(pending, r)
			}
		}
		days := availability.Compute(venue, confirmed, pending, venue.Duration)
		if err := ValidateBooking(venue, link, stands, activities, days); err != nil {
			return err
		}

		// 4. New entry from NONE/CANCELLED, merge into an open PENDING one.
		if latest == nil || latest.Feedback.Status == models.StatusCancelled {
			next := 0
			if latest != nil {
				next = latest.SeqID + 1
			}
			res := &models.Reservation{
				CompanyID: companyID,
				Edition:   edition,
				SeqID:     next,
				Stands:    stands.Normalized(),
				Feedback:  models.Feedback{Status: models.StatusPending},
			}
			res.SetClaims(activities)
			if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
				return err
			}
			result = res
			return nil
		}

		latest.Stands = latest.Stands.Merge(stands)
		latest.SetClaims(activities)
		if err := s.reservationRepo.Save(ctx, tx, latest); err != nil {
			return err
		}
		result = latest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, rabbitmq.KeyReservationCreated, result)
	return result, nil
}

func (s *reservationService) Confirm(ctx context.Context, companyID, edition, member string) (*models.Reservation, error) {
	var result *models.Reservation
	changed := false

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		latest, err := s.reservationRepo.FindLatestForUpdate(ctx, tx, companyID, edition)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		fb, err := latest.Feedback.Confirm(member)
		if err != nil {
			return err
		}
		if fb.Status == latest.Feedback.Status {
			// Re-confirming is idempotent: same record, no write.
			result = latest
			return nil
		}

		latest.Feedback = fb
		if err := s.reservationRepo.Save(ctx, tx, latest); err != nil {
			return err
		}
		result = latest
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.afterTransition(ctx, rabbitmq.KeyReservationConfirmed, result)
	}
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, companyID, edition, member string) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		latest, err := s.reservationRepo.FindLatestForUpdate(ctx, tx, companyID, edition)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		fb, err := latest.Feedback.Cancel(member)
		if err != nil {
			return err
		}
		latest.Feedback = fb
		if err := s.reservationRepo.Save(ctx, tx, latest); err != nil {
			return err
		}
		result = latest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, rabbitmq.KeyReservationCancelled, result)
	return result, nil
}

func (s *reservationService) List(ctx context.Context, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return s.reservationRepo.List(ctx, filter)
}

// afterTransition runs the fire-and-forget side effects of a committed
// transition: the notification publish and the availability cache drop.
// Neither may fail the operation.
func (s *reservationService) afterTransition(ctx context.Context, routingKey string, res *models.Reservation) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, res)
	}
	s.cache.Invalidate(ctx, res.Edition)
}

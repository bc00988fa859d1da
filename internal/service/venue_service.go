package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expohall/expo-booking-service/internal/availability"
	"github.com/expohall/expo-booking-service/internal/cache"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"gorm.io/gorm"
)

const maxDuration = 5

var (
	ErrVenueExists     = errors.New("a venue already exists for this edition")
	ErrInvalidDuration = errors.New("duration must be between 1 and 5 days")
	ErrInvalidDay      = errors.New("day is outside the edition duration")
	ErrInvalidGeometry = errors.New("stand coordinates must be non-negative")
)

// AvailabilityResult pairs the venue with its computed per-day state; the
// whole value is what gets cached.
type AvailabilityResult struct {
	Venue    *models.Venue     `json:"venue"`
	Duration int               `json:"duration"`
	Days     []availability.Day `json:"availability"`
}

type VenueService interface {
	Create(ctx context.Context, edition string, duration int) (*models.Venue, error)
	AddStand(ctx context.Context, edition string, topLeftX, topLeftY, bottomRightX, bottomRightY int) (*models.Stand, error)
	AddSlot(ctx context.Context, edition string, kind models.ActivityKind, day int, startsAt, endsAt time.Time) (*models.Slot, error)
	Availability(ctx context.Context, edition string, duration int) (*AvailabilityResult, error)
}

type venueService struct {
	venueRepo       repository.VenueRepository
	reservationRepo repository.ReservationRepository
	cache           *cache.AvailabilityCache
}

func NewVenueService(
	venueRepo repository.VenueRepository,
	reservationRepo repository.ReservationRepository,
	availCache *cache.AvailabilityCache,
) VenueService {
	return &venueService{
		venueRepo:       venueRepo,
		reservationRepo: reservationRepo,
		cache:           availCache,
	}
}

func (s *venueService) Create(ctx context.Context, edition string, duration int) (*models.Venue, error) {
	if duration < 1 || duration > maxDuration {
		return nil, ErrInvalidDuration
	}

	venue := &models.Venue{Edition: edition, Duration: duration}
	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.venueRepo.FindByEditionForUpdate(ctx, tx, edition)
		if err == nil {
			return ErrVenueExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.venueRepo.Create(ctx, tx, venue)
	})
	if err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *venueService) AddStand(ctx context.Context, edition string, topLeftX, topLeftY, bottomRightX, bottomRightY int) (*models.Stand, error) {
	if topLeftX < 0 || topLeftY < 0 || bottomRightX < 0 || bottomRightY < 0 {
		return nil, ErrInvalidGeometry
	}

	var stand *models.Stand
	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByEditionForUpdate(ctx, tx, edition)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoVenue
			}
			return err
		}
		stand = &models.Stand{
			VenueID:      venue.ID,
			ResourceID:   venue.NextStandID(),
			TopLeftX:     topLeftX,
			TopLeftY:     topLeftY,
			BottomRightX: bottomRightX,
			BottomRightY: bottomRightY,
		}
		return s.venueRepo.AddStand(ctx, tx, stand)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, edition)
	return stand, nil
}

func (s *venueService) AddSlot(ctx context.Context, edition string, kind models.ActivityKind, day int, startsAt, endsAt time.Time) (*models.Slot, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, kind)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("%w: slot must end after it starts", ErrInvalidDay)
	}

	var slot *models.Slot
	err := s.venueRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.venueRepo.FindByEditionForUpdate(ctx, tx, edition)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoVenue
			}
			return err
		}
		if day < 1 || day > venue.Duration {
			return fmt.Errorf("%w: day %d of %d", ErrInvalidDay, day, venue.Duration)
		}
		slot = &models.Slot{
			VenueID:    venue.ID,
			Kind:       kind,
			ResourceID: venue.NextSlotID(kind),
			Day:        day,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
		}
		return s.venueRepo.AddSlot(ctx, tx, slot)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, edition)
	return slot, nil
}

// Availability computes the per-day free/occupied map for the edition.
// Duration zero falls back to the venue's own duration.
func (s *venueService) Availability(ctx context.Context, edition string, duration int) (*AvailabilityResult, error) {
	if duration < 0 || duration > maxDuration {
		return nil, ErrInvalidDuration
	}

	var cached AvailabilityResult
	if duration > 0 && s.cache.Get(ctx, edition, duration, &cached) {
		return &cached, nil
	}

	venue, err := s.venueRepo.FindByEdition(ctx, edition)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoVenue
		}
		return nil, err
	}
	if duration == 0 {
		duration = venue.Duration
	}

	active, err := s.reservationRepo.FindActiveByEdition(ctx, s.reservationRepo.GetDB(), edition)
	if err != nil {
		return nil, err
	}
	var confirmed, pending []models.Reservation
	for _, r := range active {
		if r.Feedback.Status == models.StatusConfirmed {
			confirmed = append(confirmed, r)
		} else {
			pending = append(pending, r)
		}
	}

	result := &AvailabilityResult{
		Venue:    venue,
		Duration: duration,
		Days:     availability.Compute(venue, confirmed, pending, duration),
	}
	s.cache.Set(ctx, edition, duration, result)
	return result, nil
}

package service

import (
	"errors"
	"fmt"

	"github.com/expohall/expo-booking-service/internal/availability"
	"github.com/expohall/expo-booking-service/internal/models"
)

var (
	ErrWrongStandCount  = errors.New("stand count does not match the link's participation days")
	ErrActivityMismatch = errors.New("requested activities do not match the link's grant")
	ErrUnknownResource  = errors.New("requested resource does not exist in the venue")
	ErrResourceConflict = errors.New("requested resource is already booked")
)

// Conflict identifies one occupied resource in a rejected request. Day is
// zero for activity slots, which are booked as a whole.
type Conflict struct {
	Kind       string `json:"kind"`
	Day        int    `json:"day,omitempty"`
	ResourceID int    `json:"id"`
}

// ConflictError carries the full conflicting set so the caller can show
// which resources to pick differently. It matches ErrResourceConflict
// under errors.Is.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d resource(s) occupied", ErrResourceConflict, len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrResourceConflict
}

// ValidateBooking runs the structural and availability checks on a booking
// request, fail-fast in this order: stand count, activity grant, resource
// existence, availability. Structural checks come first; availability on
// malformed input is meaningless. The days argument must be computed
// without the requesting company's own reservation, since a submit
// supersedes it.
func ValidateBooking(
	venue *models.Venue,
	link *models.Link,
	stands models.StandBookings,
	activities []models.ActivityClaim,
	days []availability.Day,
) error {
	if len(stands) != link.ParticipationDays {
		return fmt.Errorf("%w: requested %d, link grants %d",
			ErrWrongStandCount, len(stands), link.ParticipationDays)
	}

	if err := matchActivities(link.Activities, activities); err != nil {
		return err
	}

	for _, sb := range stands {
		if sb.Day < 1 || sb.Day > venue.Duration {
			return fmt.Errorf("%w: day %d outside edition duration %d",
				ErrUnknownResource, sb.Day, venue.Duration)
		}
		if !venue.HasStand(sb.StandID) {
			return fmt.Errorf("%w: stand %d", ErrUnknownResource, sb.StandID)
		}
	}
	for _, claim := range activities {
		if !claim.Kind.Valid() || !venue.HasSlot(claim.Kind, claim.ResourceID) {
			return fmt.Errorf("%w: %s %d", ErrUnknownResource, claim.Kind, claim.ResourceID)
		}
	}

	return checkAvailability(stands, activities, days)
}

// matchActivities checks multiset equality between the link's granted
// activity kinds and the requested ones.
func matchActivities(granted models.Activities, requested []models.ActivityClaim) error {
	counts := make(map[models.ActivityKind]int, len(granted))
	for _, kind := range granted {
		counts[kind]++
	}
	for _, claim := range requested {
		counts[claim.Kind]--
	}
	for kind, n := range counts {
		if n != 0 {
			return fmt.Errorf("%w: %s", ErrActivityMismatch, kind)
		}
	}
	return nil
}

func checkAvailability(stands models.StandBookings, activities []models.ActivityClaim, days []availability.Day) error {
	byDay := make(map[int]*availability.Day, len(days))
	for i := range days {
		byDay[days[i].Day] = &days[i]
	}

	var conflicts []Conflict
	for _, sb := range stands.Normalized() {
		day := byDay[sb.Day]
		if day == nil {
			continue
		}
		for _, state := range day.Stands {
			if state.ID == sb.StandID && !state.Free {
				conflicts = append(conflicts, Conflict{Kind: "stand", Day: sb.Day, ResourceID: sb.StandID})
			}
		}
	}

	for _, claim := range activities {
		if slotOccupied(claim, days) {
			conflicts = append(conflicts, Conflict{Kind: string(claim.Kind), ResourceID: claim.ResourceID})
		}
	}

	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}

func slotOccupied(claim models.ActivityClaim, days []availability.Day) bool {
	for _, day := range days {
		var states []availability.SlotState
		switch claim.Kind {
		case models.ActivityWorkshop:
			states = day.Workshops
		case models.ActivityPresentation:
			states = day.Presentations
		case models.ActivityLunchTalk:
			states = day.LunchTalks
		}
		for _, state := range states {
			if state.ID == claim.ResourceID && !state.Free {
				return true
			}
		}
	}
	return false
}

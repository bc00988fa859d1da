//go:build integration

package integration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestVenue(t *testing.T, edition string, duration, nStands, nWorkshops int) *models.Venue {
	t.Helper()
	venue := &models.Venue{Edition: edition, Duration: duration}
	require.NoError(t, testDB.Create(venue).Error)

	for i := 0; i < nStands; i++ {
		stand := &models.Stand{
			VenueID:      venue.ID,
			ResourceID:   i,
			TopLeftX:     i * 10,
			TopLeftY:     0,
			BottomRightX: i*10 + 8,
			BottomRightY: 8,
		}
		require.NoError(t, testDB.Create(stand).Error)
	}
	for i := 0; i < nWorkshops; i++ {
		slot := &models.Slot{
			VenueID:    venue.ID,
			Kind:       models.ActivityWorkshop,
			ResourceID: i,
			Day:        1,
			StartsAt:   time.Date(2026, 6, 1, 10+i, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2026, 6, 1, 11+i, 0, 0, 0, time.UTC),
		}
		require.NoError(t, testDB.Create(slot).Error)
	}
	return venue
}

func createTestLink(t *testing.T, companyID, edition string, days int, activities ...models.ActivityKind) *models.Link {
	t.Helper()
	link := &models.Link{
		CompanyID:         companyID,
		Edition:           edition,
		Token:             "token-" + companyID,
		Valid:             true,
		ParticipationDays: days,
		Activities:        activities,
		ExpiresAt:         time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, testDB.Create(link).Error)
	return link
}

func newReservationService() service.ReservationService {
	venueRepo := repository.NewVenueRepository(testDB)
	reservationRepo := repository.NewReservationRepository(testDB)
	linkRepo := repository.NewLinkRepository(testDB)
	return service.NewReservationService(reservationRepo, venueRepo, linkRepo, nil, nil)
}

func stands(bookings ...models.StandBooking) models.StandBookings {
	return bookings
}

// Two companies contest a stand: the loser gets a conflict while the
// winner's entry is merely pending, and wins the resource back once the
// pending entry is cancelled.
func TestContestedStand(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 2, 1, 0)
	createTestLink(t, "acme", "2026", 2)
	createTestLink(t, "globex", "2026", 2)
	svc := newReservationService()

	// acme takes the only stand for both days
	resA, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 0},
	), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resA.SeqID)
	assert.Equal(t, models.StatusPending, resA.Feedback.Status)

	// globex is blocked even though acme is only pending
	_, err = svc.Submit(t.Context(), "globex", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 0},
	), nil)
	require.ErrorIs(t, err, service.ErrResourceConflict)

	// acme backs out, freeing the stand
	cancelled, err := svc.Cancel(t.Context(), "acme", "2026", "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Feedback.Status)

	// globex retries and gets its own ledger starting at 0
	resB, err := svc.Submit(t.Context(), "globex", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 0},
	), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resB.SeqID)

	// once confirmed, further submissions are locked out
	_, err = svc.Confirm(t.Context(), "globex", "2026", "staff-2")
	require.NoError(t, err)

	_, err = svc.Submit(t.Context(), "globex", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 0},
	), nil)
	assert.ErrorIs(t, err, service.ErrReservationLocked)
}

// Cancelling and rebooking walks the per-company sequence up without gaps.
func TestSequenceIDsAreGapless(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 1, 1, 0)
	createTestLink(t, "acme", "2026", 1)
	svc := newReservationService()

	for want := 0; want < 3; want++ {
		res, err := svc.Submit(t.Context(), "acme", "2026", stands(
			models.StandBooking{Day: 1, StandID: 0},
		), nil)
		require.NoError(t, err)
		assert.Equal(t, want, res.SeqID)

		_, err = svc.Cancel(t.Context(), "acme", "2026", "staff-1")
		require.NoError(t, err)
	}

	var count int64
	testDB.Model(&models.Reservation{}).
		Where("company_id = ? AND edition = ?", "acme", "2026").
		Count(&count)
	assert.Equal(t, int64(3), count, "cancelled entries stay in the ledger")
}

// Resubmitting while pending merges into the same entry instead of
// appending a new one.
func TestPendingResubmitMerges(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 2, 2, 0)
	createTestLink(t, "acme", "2026", 2)
	svc := newReservationService()

	first, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 0},
	), nil)
	require.NoError(t, err)

	// day 2 moves to stand 1, day 1 stays
	second, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
		models.StandBooking{Day: 2, StandID: 1},
	), nil)
	require.NoError(t, err)
	assert.Equal(t, first.SeqID, second.SeqID)
	assert.True(t, second.BooksStand(1, 0))
	assert.True(t, second.BooksStand(2, 1))
	assert.False(t, second.BooksStand(2, 0))

	var count int64
	testDB.Model(&models.Reservation{}).
		Where("company_id = ? AND edition = ?", "acme", "2026").
		Count(&count)
	assert.Equal(t, int64(1), count)
}

// An activity slot is booked as a whole: once claimed, even pending, no
// other company can claim the same resource.
func TestActivitySlotContention(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 1, 2, 1)
	createTestLink(t, "acme", "2026", 1, models.ActivityWorkshop)
	createTestLink(t, "globex", "2026", 1, models.ActivityWorkshop)
	svc := newReservationService()

	resA, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
	), []models.ActivityClaim{{Kind: models.ActivityWorkshop, ResourceID: 0}})
	require.NoError(t, err)
	require.NotNil(t, resA.WorkshopID)
	assert.Equal(t, 0, *resA.WorkshopID)

	_, err = svc.Submit(t.Context(), "globex", "2026", stands(
		models.StandBooking{Day: 1, StandID: 1},
	), []models.ActivityClaim{{Kind: models.ActivityWorkshop, ResourceID: 0}})
	assert.ErrorIs(t, err, service.ErrResourceConflict)
}

// Companies racing for the last stand: exactly one submission wins, the
// rest see a conflict.
func TestConcurrentContestedSubmit(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 1, 1, 0)
	contenders := 10
	for i := 0; i < contenders; i++ {
		createTestLink(t, fmt.Sprintf("company-%02d", i), "2026", 1)
	}
	svc := newReservationService()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners, conflicts := 0, 0

	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Submit(t.Context(), fmt.Sprintf("company-%02d", idx), "2026", stands(
				models.StandBooking{Day: 1, StandID: 0},
			), nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case assert.ErrorIs(t, err, service.ErrResourceConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one submission should win the stand")
	assert.Equal(t, contenders-1, conflicts)

	var active int64
	testDB.Model(&models.Reservation{}).
		Where("edition = ? AND feedback_status <> ?", "2026", models.StatusCancelled).
		Count(&active)
	assert.Equal(t, int64(1), active)
}

// Confirming twice is a no-op; cancelling a confirmed entry works; a
// cancelled entry is terminal.
func TestLifecycleTransitions(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 1, 1, 0)
	createTestLink(t, "acme", "2026", 1)
	svc := newReservationService()

	_, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
	), nil)
	require.NoError(t, err)

	first, err := svc.Confirm(t.Context(), "acme", "2026", "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, first.Feedback.Status)
	require.NotNil(t, first.Feedback.Member)
	assert.Equal(t, "staff-1", *first.Feedback.Member)

	// idempotent re-confirm keeps the original member
	again, err := svc.Confirm(t.Context(), "acme", "2026", "staff-2")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", *again.Feedback.Member)

	cancelled, err := svc.Cancel(t.Context(), "acme", "2026", "staff-3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Feedback.Status)

	_, err = svc.Confirm(t.Context(), "acme", "2026", "staff-4")
	assert.ErrorIs(t, err, models.ErrCancelled)

	_, err = svc.Cancel(t.Context(), "acme", "2026", "staff-5")
	assert.ErrorIs(t, err, models.ErrAlreadyCancelled)
}

// A revoked link blocks new submissions but leaves the existing entry
// untouched.
func TestRevokedLink(t *testing.T) {
	cleanTables()
	createTestVenue(t, "2026", 1, 2, 0)
	link := createTestLink(t, "acme", "2026", 1)
	svc := newReservationService()

	_, err := svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 0},
	), nil)
	require.NoError(t, err)

	testDB.Model(link).Update("valid", false)

	_, err = svc.Submit(t.Context(), "acme", "2026", stands(
		models.StandBooking{Day: 1, StandID: 1},
	), nil)
	assert.ErrorIs(t, err, service.ErrLinkInvalid)

	var res models.Reservation
	require.NoError(t, testDB.Where("company_id = ?", "acme").First(&res).Error)
	assert.True(t, res.BooksStand(1, 0))
}

// Package availability derives, per day, which venue resources are still
// free given the current reservation ledger. The computation is pure: it
// takes loaded models and returns a value, so it can run inside or outside
// a storage transaction.
package availability

import (
	"time"

	"github.com/expohall/expo-booking-service/internal/models"
)

// ResourceState is one stand's availability on one day.
type ResourceState struct {
	ID   int  `json:"id"`
	Free bool `json:"free"`
}

// SlotState is one timed slot's availability, with its schedule.
type SlotState struct {
	ID       int       `json:"id"`
	Free     bool      `json:"free"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Day is the availability picture for a single day of the edition.
type Day struct {
	Day           int             `json:"day"`
	NStands       int             `json:"n_stands"`
	Stands        []ResourceState `json:"stands"`
	Workshops     []SlotState     `json:"workshops"`
	Presentations []SlotState     `json:"presentations"`
	LunchTalks    []SlotState     `json:"lunch_talks"`
}

type standKey struct {
	day     int
	standID int
}

// occupancy indexes the reservation sets once so the per-day sweep is a
// map lookup instead of a rescan.
type occupancy struct {
	stands          map[standKey]bool
	claims          map[models.ActivityKind]map[int]bool
	confirmedStands map[int]int
}

func buildOccupancy(confirmed, pending []models.Reservation) occupancy {
	occ := occupancy{
		stands:          make(map[standKey]bool),
		claims:          make(map[models.ActivityKind]map[int]bool),
		confirmedStands: make(map[int]int),
	}
	for _, kind := range models.ActivityKinds {
		occ.claims[kind] = make(map[int]bool)
	}

	add := func(r *models.Reservation) {
		for _, sb := range r.Stands {
			occ.stands[standKey{day: sb.Day, standID: sb.StandID}] = true
		}
		for _, kind := range models.ActivityKinds {
			if id := r.ClaimFor(kind); id != nil {
				occ.claims[kind][*id] = true
			}
		}
	}

	for i := range confirmed {
		add(&confirmed[i])
		for _, sb := range confirmed[i].Stands {
			occ.confirmedStands[sb.Day]++
		}
	}
	// Pending reservations occupy resources exactly like confirmed ones.
	// This is what stops two companies from racing for the same stand
	// without any locking between them.
	for i := range pending {
		add(&pending[i])
	}
	return occ
}

// Compute returns the free/occupied map for days 1..duration. A resource
// is free only when no confirmed or pending reservation references it.
// NStands counts confirmed stand bookings only.
func Compute(venue *models.Venue, confirmed, pending []models.Reservation, duration int) []Day {
	occ := buildOccupancy(confirmed, pending)

	days := make([]Day, 0, duration)
	for day := 1; day <= duration; day++ {
		d := Day{
			Day:           day,
			NStands:       occ.confirmedStands[day],
			Stands:        make([]ResourceState, 0, len(venue.Stands)),
			Workshops:     []SlotState{},
			Presentations: []SlotState{},
			LunchTalks:    []SlotState{},
		}
		for _, stand := range venue.Stands {
			d.Stands = append(d.Stands, ResourceState{
				ID:   stand.ResourceID,
				Free: !occ.stands[standKey{day: day, standID: stand.ResourceID}],
			})
		}
		for _, slot := range venue.Slots {
			if slot.Day != day {
				continue
			}
			state := SlotState{
				ID:       slot.ResourceID,
				Free:     !occ.claims[slot.Kind][slot.ResourceID],
				StartsAt: slot.StartsAt,
				EndsAt:   slot.EndsAt,
			}
			switch slot.Kind {
			case models.ActivityWorkshop:
				d.Workshops = append(d.Workshops, state)
			case models.ActivityPresentation:
				d.Presentations = append(d.Presentations, state)
			case models.ActivityLunchTalk:
				d.LunchTalks = append(d.LunchTalks, state)
			}
		}
		days = append(days, d)
	}
	return days
}

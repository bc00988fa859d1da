package models

import "time"

// StandBooking claims one stand for one day.
type StandBooking struct {
	Day     int `json:"day"`
	StandID int `json:"stand_id"`
}

type StandBookings []StandBooking

// ActivityClaim requests one slot resource of a given kind.
type ActivityClaim struct {
	Kind       ActivityKind `json:"kind"`
	ResourceID int          `json:"id"`
}

// Reservation is one entry in a company's append-only reservation ledger
// for an edition. SeqID is gapless from 0 per (company, edition); the
// entry with the highest SeqID is the authoritative one. At most one
// non-cancelled entry may exist per (company, edition), enforced both here
// and by a partial unique index in the database.
type Reservation struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CompanyID string `gorm:"not null;uniqueIndex:idx_reservation_seq,priority:1" json:"company_id"`
	Edition   string `gorm:"not null;uniqueIndex:idx_reservation_seq,priority:2" json:"edition"`
	SeqID     int    `gorm:"not null;uniqueIndex:idx_reservation_seq,priority:3" json:"id"`

	Stands         StandBookings `gorm:"serializer:json" json:"stands"`
	WorkshopID     *int          `json:"workshop,omitempty"`
	PresentationID *int          `json:"presentation,omitempty"`
	LunchTalkID    *int          `json:"lunch_talk,omitempty"`

	Feedback  Feedback  `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalized collapses duplicate days, later entries winning, and keeps
// the result in ascending day order.
func (b StandBookings) Normalized() StandBookings {
	byDay := make(map[int]int, len(b))
	for _, sb := range b {
		byDay[sb.Day] = sb.StandID
	}
	out := make(StandBookings, 0, len(byDay))
	maxDay := 0
	for day := range byDay {
		if day > maxDay {
			maxDay = day
		}
	}
	for day := 1; day <= maxDay; day++ {
		if standID, ok := byDay[day]; ok {
			out = append(out, StandBooking{Day: day, StandID: standID})
		}
	}
	return out
}

// Merge overlays incoming day bookings onto the existing ones, per-day
// last write wins.
func (b StandBookings) Merge(incoming StandBookings) StandBookings {
	return append(append(StandBookings{}, b...), incoming...).Normalized()
}

// BooksStand reports whether this reservation occupies the given stand on
// the given day.
func (r *Reservation) BooksStand(day, standID int) bool {
	for _, sb := range r.Stands {
		if sb.Day == day && sb.StandID == standID {
			return true
		}
	}
	return false
}

// ClaimFor returns the claimed resource id for one activity kind, or nil.
func (r *Reservation) ClaimFor(kind ActivityKind) *int {
	switch kind {
	case ActivityWorkshop:
		return r.WorkshopID
	case ActivityPresentation:
		return r.PresentationID
	case ActivityLunchTalk:
		return r.LunchTalkID
	}
	return nil
}

// SetClaims replaces the activity claims with the given set.
func (r *Reservation) SetClaims(claims []ActivityClaim) {
	r.WorkshopID = nil
	r.PresentationID = nil
	r.LunchTalkID = nil
	for _, c := range claims {
		id := c.ResourceID
		switch c.Kind {
		case ActivityWorkshop:
			r.WorkshopID = &id
		case ActivityPresentation:
			r.PresentationID = &id
		case ActivityLunchTalk:
			r.LunchTalkID = &id
		}
	}
}

// Active reports whether this reservation still occupies resources.
func (r *Reservation) Active() bool {
	return r.Feedback.Status != StatusCancelled
}

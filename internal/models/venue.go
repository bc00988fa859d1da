package models

import "time"

type ActivityKind string

const (
	ActivityWorkshop     ActivityKind = "workshop"
	ActivityPresentation ActivityKind = "presentation"
	ActivityLunchTalk    ActivityKind = "lunchTalk"
)

// ActivityKinds lists every bookable slot category.
var ActivityKinds = []ActivityKind{ActivityWorkshop, ActivityPresentation, ActivityLunchTalk}

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityWorkshop, ActivityPresentation, ActivityLunchTalk:
		return true
	}
	return false
}

// Venue is the fixed inventory of bookable resources for one edition.
// There is at most one venue per edition. Resources are never removed,
// so historical reservation references stay valid.
type Venue struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Edition   string    `gorm:"uniqueIndex;not null" json:"edition"`
	Duration  int       `gorm:"not null" json:"duration"`
	Stands    []Stand   `gorm:"foreignKey:VenueID" json:"stands"`
	Slots     []Slot    `gorm:"foreignKey:VenueID" json:"slots"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Stand is a physical booth. ResourceID is sequential per venue starting
// at 0. The rectangle is floor-plan metadata only and is not checked for
// overlap.
type Stand struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	VenueID      uint      `gorm:"not null;uniqueIndex:idx_stand_resource,priority:1" json:"-"`
	ResourceID   int       `gorm:"not null;uniqueIndex:idx_stand_resource,priority:2" json:"id"`
	TopLeftX     int       `gorm:"not null" json:"top_left_x"`
	TopLeftY     int       `gorm:"not null" json:"top_left_y"`
	BottomRightX int       `gorm:"not null" json:"bottom_right_x"`
	BottomRightY int       `gorm:"not null" json:"bottom_right_y"`
	CreatedAt    time.Time `json:"-"`
}

// Slot is a timed activity resource (workshop, presentation or lunch
// talk). ResourceID is sequential per venue per kind, so a workshop 3 and
// a presentation 3 are distinct resources.
type Slot struct {
	ID         uint         `gorm:"primaryKey" json:"-"`
	VenueID    uint         `gorm:"not null;uniqueIndex:idx_slot_resource,priority:1" json:"-"`
	Kind       ActivityKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_slot_resource,priority:2" json:"kind"`
	ResourceID int          `gorm:"not null;uniqueIndex:idx_slot_resource,priority:3" json:"id"`
	Day        int          `gorm:"not null" json:"day"`
	StartsAt   time.Time    `gorm:"not null" json:"starts_at"`
	EndsAt     time.Time    `gorm:"not null" json:"ends_at"`
	CreatedAt  time.Time    `json:"-"`
}

func (v *Venue) HasStand(resourceID int) bool {
	for _, s := range v.Stands {
		if s.ResourceID == resourceID {
			return true
		}
	}
	return false
}

func (v *Venue) HasSlot(kind ActivityKind, resourceID int) bool {
	for _, s := range v.Slots {
		if s.Kind == kind && s.ResourceID == resourceID {
			return true
		}
	}
	return false
}

// SlotsOfKind returns the venue's slots of one kind, in resource id order.
func (v *Venue) SlotsOfKind(kind ActivityKind) []Slot {
	var out []Slot
	for _, s := range v.Slots {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// NextStandID returns the next unused stand resource id (max existing + 1,
// or 0 for an empty venue).
func (v *Venue) NextStandID() int {
	next := 0
	for _, s := range v.Stands {
		if s.ResourceID >= next {
			next = s.ResourceID + 1
		}
	}
	return next
}

// NextSlotID returns the next unused resource id within one slot category.
func (v *Venue) NextSlotID(kind ActivityKind) int {
	next := 0
	for _, s := range v.Slots {
		if s.Kind == kind && s.ResourceID >= next {
			next = s.ResourceID + 1
		}
	}
	return next
}

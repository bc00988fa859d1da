package dto

import (
	"time"

	"github.com/expohall/expo-booking-service/internal/models"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type CreateVenueRequest struct {
	Duration int `json:"duration"`
}

type AddStandRequest struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

type AddSlotRequest struct {
	Kind     string    `json:"kind"`
	Day      int       `json:"day"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type CreateLinkRequest struct {
	CompanyID         string   `json:"company_id"`
	Edition           string   `json:"edition"`
	ParticipationDays int      `json:"participation_days"`
	Activities        []string `json:"activities"`
	TTLHours          int      `json:"ttl_hours"`
}

type SubmitReservationRequest struct {
	Stands     []StandBookingRequest  `json:"stands"`
	Activities []ActivityClaimRequest `json:"activities"`
}

type StandBookingRequest struct {
	Day     int `json:"day"`
	StandID int `json:"stand_id"`
}

type ActivityClaimRequest struct {
	Kind string `json:"kind"`
	ID   int    `json:"id"`
}

type FeedbackRequest struct {
	Member string `json:"member"`
}

func (r *SubmitReservationRequest) StandBookings() models.StandBookings {
	out := make(models.StandBookings, 0, len(r.Stands))
	for _, s := range r.Stands {
		out = append(out, models.StandBooking{Day: s.Day, StandID: s.StandID})
	}
	return out
}

func (r *SubmitReservationRequest) ActivityClaims() []models.ActivityClaim {
	out := make([]models.ActivityClaim, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, models.ActivityClaim{Kind: models.ActivityKind(a.Kind), ResourceID: a.ID})
	}
	return out
}

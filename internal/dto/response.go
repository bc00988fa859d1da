package dto

import (
	"time"

	"github.com/expohall/expo-booking-service/internal/availability"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/service"
)

type ReservationResponse struct {
	ID           int                   `json:"id"`
	CompanyID    string                `json:"company_id"`
	Edition      string                `json:"edition"`
	Stands       []StandBookingRequest `json:"stands"`
	Workshop     *int                  `json:"workshop,omitempty"`
	Presentation *int                  `json:"presentation,omitempty"`
	LunchTalk    *int                  `json:"lunch_talk,omitempty"`
	Status       models.FeedbackStatus `json:"status"`
	Member       *string               `json:"member,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	stands := make([]StandBookingRequest, 0, len(r.Stands))
	for _, sb := range r.Stands {
		stands = append(stands, StandBookingRequest{Day: sb.Day, StandID: sb.StandID})
	}
	return ReservationResponse{
		ID:           r.SeqID,
		CompanyID:    r.CompanyID,
		Edition:      r.Edition,
		Stands:       stands,
		Workshop:     r.WorkshopID,
		Presentation: r.PresentationID,
		LunchTalk:    r.LunchTalkID,
		Status:       r.Feedback.Status,
		Member:       r.Feedback.Member,
		CreatedAt:    r.CreatedAt,
	}
}

type StandResponse struct {
	ID          int   `json:"id"`
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

type SlotResponse struct {
	ID       int       `json:"id"`
	Day      int       `json:"day"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type VenueResponse struct {
	Edition       string          `json:"edition"`
	Duration      int             `json:"duration"`
	Stands        []StandResponse `json:"stands"`
	Workshops     []SlotResponse  `json:"workshops"`
	Presentations []SlotResponse  `json:"presentations"`
	LunchTalks    []SlotResponse  `json:"lunch_talks"`
}

type AvailabilityResponse struct {
	Venue        VenueResponse      `json:"venue"`
	Duration     int                `json:"duration"`
	Availability []availability.Day `json:"availability"`
}

func ToVenueResponse(v *models.Venue) VenueResponse {
	resp := VenueResponse{
		Edition:       v.Edition,
		Duration:      v.Duration,
		Stands:        []StandResponse{},
		Workshops:     []SlotResponse{},
		Presentations: []SlotResponse{},
		LunchTalks:    []SlotResponse{},
	}
	for _, s := range v.Stands {
		resp.Stands = append(resp.Stands, StandResponse{
			ID:          s.ResourceID,
			TopLeft:     Point{X: s.TopLeftX, Y: s.TopLeftY},
			BottomRight: Point{X: s.BottomRightX, Y: s.BottomRightY},
		})
	}
	for _, s := range v.Slots {
		slot := SlotResponse{ID: s.ResourceID, Day: s.Day, StartsAt: s.StartsAt, EndsAt: s.EndsAt}
		switch s.Kind {
		case models.ActivityWorkshop:
			resp.Workshops = append(resp.Workshops, slot)
		case models.ActivityPresentation:
			resp.Presentations = append(resp.Presentations, slot)
		case models.ActivityLunchTalk:
			resp.LunchTalks = append(resp.LunchTalks, slot)
		}
	}
	return resp
}

func ToAvailabilityResponse(result *service.AvailabilityResult) AvailabilityResponse {
	return AvailabilityResponse{
		Venue:        ToVenueResponse(result.Venue),
		Duration:     result.Duration,
		Availability: result.Days,
	}
}

type LinkResponse struct {
	CompanyID         string            `json:"company_id"`
	Edition           string            `json:"edition"`
	Token             string            `json:"token"`
	Valid             bool              `json:"valid"`
	ParticipationDays int               `json:"participation_days"`
	Activities        models.Activities `json:"activities"`
	ExpiresAt         time.Time         `json:"expires_at"`
}

func ToLinkResponse(l *models.Link) LinkResponse {
	return LinkResponse{
		CompanyID:         l.CompanyID,
		Edition:           l.Edition,
		Token:             l.Token,
		Valid:             l.Valid,
		ParticipationDays: l.ParticipationDays,
		Activities:        l.Activities,
		ExpiresAt:         l.ExpiresAt,
	}
}

type ErrorResponse struct {
	Message   string             `json:"message"`
	Conflicts []service.Conflict `json:"conflicts,omitempty"`
}

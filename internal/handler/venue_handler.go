package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/expohall/expo-booking-service/internal/dto"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	svc service.VenueService
}

func NewVenueHandler(svc service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

func (h *VenueHandler) RegisterRoutes(e *echo.Echo) {
	editions := e.Group("/api/v1/editions/:edition")
	editions.POST("/venue", h.CreateVenue)
	editions.POST("/venue/stands", h.AddStand)
	editions.POST("/venue/slots", h.AddSlot)
	editions.GET("/availability", h.GetAvailability)
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var req dto.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	venue, err := h.svc.Create(c.Request().Context(), c.Param("edition"), req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVenueExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidDuration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) AddStand(c echo.Context) error {
	var req dto.AddStandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	stand, err := h.svc.AddStand(
		c.Request().Context(),
		c.Param("edition"),
		req.TopLeft.X, req.TopLeft.Y,
		req.BottomRight.X, req.BottomRight.Y,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoVenue):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidGeometry):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.StandResponse{
		ID:          stand.ResourceID,
		TopLeft:     dto.Point{X: stand.TopLeftX, Y: stand.TopLeftY},
		BottomRight: dto.Point{X: stand.BottomRightX, Y: stand.BottomRightY},
	})
}

func (h *VenueHandler) AddSlot(c echo.Context) error {
	var req dto.AddSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	slot, err := h.svc.AddSlot(
		c.Request().Context(),
		c.Param("edition"),
		models.ActivityKind(req.Kind),
		req.Day,
		req.StartsAt, req.EndsAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoVenue):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDay), errors.Is(err, service.ErrUnknownResource):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.SlotResponse{
		ID:       slot.ResourceID,
		Day:      slot.Day,
		StartsAt: slot.StartsAt,
		EndsAt:   slot.EndsAt,
	})
}

func (h *VenueHandler) GetAvailability(c echo.Context) error {
	duration := 0
	if raw := c.QueryParam("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid duration")
		}
		duration = n
	}

	result, err := h.svc.Availability(c.Request().Context(), c.Param("edition"), duration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoVenue):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDuration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(result))
}

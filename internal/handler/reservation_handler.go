package handler

import (
	"errors"
	"net/http"

	"github.com/expohall/expo-booking-service/internal/dto"
	"github.com/expohall/expo-booking-service/internal/middleware"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/repository"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc   service.ReservationService
	links service.LinkService
}

func NewReservationHandler(svc service.ReservationService, links service.LinkService) *ReservationHandler {
	return &ReservationHandler{svc: svc, links: links}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	editions := e.Group("/api/v1/editions")
	editions.POST("/:edition/reservation", h.Submit, middleware.RequireLink(h.links))

	e.GET("/api/v1/reservations", h.List)

	companies := e.Group("/api/v1/companies/:company/editions/:edition/reservation")
	companies.POST("/confirm", h.Confirm)
	companies.POST("/cancel", h.Cancel)
}

func (h *ReservationHandler) Submit(c echo.Context) error {
	link := middleware.LinkFrom(c)
	if link == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing link")
	}

	var req dto.SubmitReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.svc.Submit(
		c.Request().Context(),
		link.CompanyID,
		c.Param("edition"),
		req.StandBookings(),
		req.ActivityClaims(),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongStandCount),
			errors.Is(err, service.ErrActivityMismatch),
			errors.Is(err, service.ErrUnknownResource):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrResourceConflict):
			return err // rendered with conflict detail by the error handler
		case errors.Is(err, service.ErrReservationLocked):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNoVenue):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrLinkNotFound), errors.Is(err, service.ErrLinkInvalid):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Confirm(c echo.Context) error {
	var req dto.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Member == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member is required")
	}

	reservation, err := h.svc.Confirm(c.Request().Context(), c.Param("company"), c.Param("edition"), req.Member)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, models.ErrCancelled):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	var req dto.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Member == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member is required")
	}

	reservation, err := h.svc.Cancel(c.Request().Context(), c.Param("company"), c.Param("edition"), req.Member)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, models.ErrAlreadyCancelled):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) List(c echo.Context) error {
	filter := repository.ReservationFilter{
		CompanyID:  c.QueryParam("company"),
		Edition:    c.QueryParam("edition"),
		LatestOnly: c.QueryParam("latest") == "true",
	}

	reservations, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/expohall/expo-booking-service/internal/dto"
	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

const defaultLinkTTL = 30 * 24 * time.Hour

type LinkHandler struct {
	svc service.LinkService
}

func NewLinkHandler(svc service.LinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

func (h *LinkHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/links", h.CreateLink)
	e.DELETE("/api/v1/links/:company/:edition", h.RevokeLink)
}

func (h *LinkHandler) CreateLink(c echo.Context) error {
	var req dto.CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CompanyID == "" || req.Edition == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "company_id and edition are required")
	}

	ttl := defaultLinkTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}
	activities := make(models.Activities, 0, len(req.Activities))
	for _, a := range req.Activities {
		activities = append(activities, models.ActivityKind(a))
	}

	link, err := h.svc.Create(c.Request().Context(), req.CompanyID, req.Edition, req.ParticipationDays, activities, ttl)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGrant) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToLinkResponse(link))
}

func (h *LinkHandler) RevokeLink(c echo.Context) error {
	err := h.svc.Revoke(c.Request().Context(), c.Param("company"), c.Param("edition"))
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

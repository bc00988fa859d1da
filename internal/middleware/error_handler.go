package middleware

import (
	"errors"
	"net/http"

	"github.com/expohall/expo-booking-service/internal/dto"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Conflict errors carry the occupied resource set; surface it so the
	// caller can re-pick without another availability round trip.
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		_ = c.JSON(http.StatusConflict, dto.ErrorResponse{
			Message:   conflictErr.Error(),
			Conflicts: conflictErr.Conflicts,
		})
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}

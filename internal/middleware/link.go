package middleware

import (
	"net/http"
	"strings"

	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/expohall/expo-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

// LinkContextKey is where RequireLink stores the resolved *models.Link.
const LinkContextKey = "link"

// RequireLink authenticates company requests with their link bearer token.
// The token must verify, the stored link must still be valid and unexpired,
// and its edition must match the one in the route.
func RequireLink(links service.LinkService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			link, err := links.Verify(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid link")
			}
			if edition := c.Param("edition"); edition != "" && edition != link.Edition {
				return echo.NewHTTPError(http.StatusForbidden, "link is not valid for this edition")
			}

			c.Set(LinkContextKey, link)
			return next(c)
		}
	}
}

// LinkFrom retrieves the authenticated link set by RequireLink.
func LinkFrom(c echo.Context) *models.Link {
	link, _ := c.Get(LinkContextKey).(*models.Link)
	return link
}

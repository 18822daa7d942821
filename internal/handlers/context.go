package handlers

import (
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getProfileIDFromContext extracts the authenticated profile id set by
// the JWT middleware. Empty means no valid principal.
func getProfileIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.ProfileID
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/repositories"
)

// BadgeHandler serves the read-only badge catalog
type BadgeHandler struct {
	badgeRepository repositories.BadgeRepository
}

// NewBadgeHandler creates a new BadgeHandler
func NewBadgeHandler(badgeRepo repositories.BadgeRepository) *BadgeHandler {
	return &BadgeHandler{badgeRepository: badgeRepo}
}

// RegisterBadgeRoutes registers badge-related routes
func (h *BadgeHandler) RegisterBadgeRoutes(g *echo.Group) {
	g.GET("/badges", h.GetBadges)
}

// GetBadges returns the badge catalog
func (h *BadgeHandler) GetBadges(c echo.Context) error {
	badges, err := h.badgeRepository.GetBadges()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, badges)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/notifications"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	service *notifications.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *notifications.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkRead)
	g.PUT("/notifications/read-all", h.MarkAllRead)
}

// GetNotifications returns the viewer's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	notifs, err := h.service.ForViewer(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": notifs})
}

// GetUnreadCount returns the viewer's count of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	count, err := h.service.UnreadCount(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkRead marks a single notification as read for the viewer
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.service.MarkRead(c.Request().Context(), profileID, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllRead marks every current notification as read for the viewer
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.service.MarkAllRead(c.Request().Context(), profileID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/repositories"
	"gorm.io/gorm"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepository: profileRepo}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles", h.GetProfiles)
	g.GET("/profiles/me", h.GetMyProfile)
	g.PUT("/profiles/me", h.UpdateMyProfile)
	g.GET("/profiles/search", h.SearchProfiles)
	g.GET("/profiles/:id", h.GetProfileByID)
}

// GetProfiles returns the full directory of profiles
func (h *ProfileHandler) GetProfiles(c echo.Context) error {
	profiles, err := h.profileRepository.GetProfiles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetProfileByID retrieves another user's profile by ID
func (h *ProfileHandler) GetProfileByID(c echo.Context) error {
	profile, err := h.profileRepository.GetProfileByID(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// GetMyProfile retrieves the authenticated user's profile
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	profile, err := h.profileRepository.GetProfileByID(profileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile updates the authenticated user's display fields and
// occasion dates. Kudos balance and role are not editable here.
func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByID(profileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Department != "" {
		profile.Department = req.Department
	}
	if req.Birthday != nil {
		profile.Birthday = req.Birthday
	}
	if req.WorkAnniversary != nil {
		profile.WorkAnniversary = req.WorkAnniversary
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// SearchProfiles searches profiles by a query string (username or email)
func (h *ProfileHandler) SearchProfiles(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	profiles, err := h.profileRepository.SearchProfiles(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profiles)
}

package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/repositories"
	"gorm.io/gorm"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionRepository   repositories.ReactionRepository
	nominationRepository repositories.NominationRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, nominationRepo repositories.NominationRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository:   reactionRepo,
		nominationRepository: nominationRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/nominations/:nomination_id/reactions", h.ReactToNomination)
	g.DELETE("/nominations/:nomination_id/reactions", h.RemoveReaction)
	g.GET("/nominations/:nomination_id/reactions", h.GetReactionsForNomination)
}

// ReactToNomination adds or toggles the user's reaction. Re-selecting
// the same type removes the reaction; a different type replaces it.
func (h *ReactionHandler) ReactToNomination(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	nominationID := c.Param("nomination_id")

	var req models.AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify nomination exists
	if _, err := h.nominationRepository.GetNominationByID(nominationID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Nomination not found")
	}

	existing, err := h.reactionRepository.GetReaction(nominationID, profileID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing != nil {
		if existing.Type == req.Type {
			// Same type re-selected: toggle off
			if err := h.reactionRepository.DeleteReaction(existing.ID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			return c.JSON(http.StatusOK, echo.Map{"removed": true})
		}
		if err := h.reactionRepository.UpdateReactionType(existing.ID, req.Type); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		existing.Type = req.Type
		return c.JSON(http.StatusOK, existing)
	}

	reaction := &models.Reaction{
		NominationID: nominationID,
		UserID:       profileID,
		Type:         req.Type,
	}
	if err := h.reactionRepository.CreateReaction(reaction); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, reaction)
}

// RemoveReaction removes the user's reaction from a nomination
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	nominationID := c.Param("nomination_id")

	existing, err := h.reactionRepository.GetReaction(nominationID, profileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.reactionRepository.DeleteReaction(existing.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReactionsForNomination retrieves all reactions for a nomination
func (h *ReactionHandler) GetReactionsForNomination(c echo.Context) error {
	nominationID := c.Param("nomination_id")

	reactions, err := h.reactionRepository.GetReactionsByNominationID(nominationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"nomination_id": nominationID, "reactions": reactions})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/nominations"
	"github.com/teamkudos/recognition/backend/internal/repositories"
)

// NominationHandler handles HTTP requests related to nominations
type NominationHandler struct {
	lifecycle             *nominations.Service
	nominationRepository  repositories.NominationRepository
	profileRepository     repositories.ProfileRepository
	reactionRepository    repositories.ReactionRepository
	commentRepository     repositories.CommentRepository
	commentLikeRepository repositories.CommentLikeRepository
}

// NewNominationHandler creates a new NominationHandler
func NewNominationHandler(
	lifecycle *nominations.Service,
	nominationRepo repositories.NominationRepository,
	profileRepo repositories.ProfileRepository,
	reactionRepo repositories.ReactionRepository,
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
) *NominationHandler {
	return &NominationHandler{
		lifecycle:             lifecycle,
		nominationRepository:  nominationRepo,
		profileRepository:     profileRepo,
		reactionRepository:    reactionRepo,
		commentRepository:     commentRepo,
		commentLikeRepository: commentLikeRepo,
	}
}

// RegisterNominationRoutes registers nomination-related routes
func (h *NominationHandler) RegisterNominationRoutes(g *echo.Group) {
	g.POST("/nominations", h.CreateNomination)
	g.GET("/nominations", h.GetFeed)
	g.GET("/nominations/pending", h.GetPendingNominations)
	g.PUT("/nominations/:id/approve", h.ApproveNomination)
	g.PUT("/nominations/:id/reject", h.RejectNomination)
	g.DELETE("/nominations/:id", h.DeleteNomination)
}

// EnrichedNomination is a nomination with its engagement data attached
type EnrichedNomination struct {
	models.Nomination
	Reactions []models.Reaction `json:"reactions"`
	Comments  []models.Comment  `json:"comments"`
}

// CreateNomination submits a new recognition request in pending status
func (h *NominationHandler) CreateNomination(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreateNominationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nomination, err := h.lifecycle.Create(profileID, req.ReceiverID, req.BadgeID, req.Message)
	if err != nil {
		if errors.Is(err, nominations.ErrMissingField) || errors.Is(err, nominations.ErrMessageTooShort) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, nomination)
}

// GetFeed returns all nominations newest first, enriched with sender,
// receiver, badge, reactions and threaded comments
func (h *NominationHandler) GetFeed(c echo.Context) error {
	noms, err := h.nominationRepository.GetNominations()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrichNominations(noms)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"nominations": enriched})
}

// GetPendingNominations returns the review queue for admins
func (h *NominationHandler) GetPendingNominations(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	noms, err := h.nominationRepository.GetNominationsByStatus(models.StatusPending)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"nominations": noms})
}

// ApproveNomination approves a pending nomination and grants kudos
func (h *NominationHandler) ApproveNomination(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	nomination, err := h.lifecycle.Approve(c.Param("id"), profileID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return c.JSON(http.StatusOK, nomination)
}

// RejectNomination rejects a pending nomination
func (h *NominationHandler) RejectNomination(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.lifecycle.Reject(c.Param("id"), profileID); err != nil {
		return mapLifecycleError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteNomination removes a nomination, reclaiming kudos if it had
// been approved. Allowed for admins and the original sender.
func (h *NominationHandler) DeleteNomination(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.lifecycle.Delete(c.Param("id"), profileID); err != nil {
		return mapLifecycleError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NominationHandler) requireAdmin(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	profile, err := h.profileRepository.GetProfileByID(profileID)
	if err != nil || !profile.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}
	return nil
}

// enrichNominations attaches reactions and threaded comments to each
// nomination in one pass over the engagement tables.
func (h *NominationHandler) enrichNominations(noms []models.Nomination) ([]EnrichedNomination, error) {
	reactions, err := h.reactionRepository.GetAllReactions()
	if err != nil {
		return nil, err
	}
	comments, err := h.commentRepository.GetAllComments()
	if err != nil {
		return nil, err
	}
	likes, err := h.commentLikeRepository.GetAllCommentLikes()
	if err != nil {
		return nil, err
	}
	profiles, err := h.profileRepository.GetProfiles()
	if err != nil {
		return nil, err
	}

	profileMap := make(map[string]models.ProfileCompact, len(profiles))
	for _, p := range profiles {
		profileMap[p.ID] = p.ToCompact()
	}

	likesByComment := make(map[string][]models.CommentLike)
	for _, l := range likes {
		likesByComment[l.CommentID] = append(likesByComment[l.CommentID], l)
	}

	threaded := threadComments(comments, likesByComment, profileMap)

	reactionsByNomination := make(map[string][]models.Reaction)
	for _, r := range reactions {
		reactionsByNomination[r.NominationID] = append(reactionsByNomination[r.NominationID], r)
	}

	enriched := make([]EnrichedNomination, len(noms))
	for i, nom := range noms {
		enriched[i] = EnrichedNomination{
			Nomination: nom,
			Reactions:  orEmptyReactions(reactionsByNomination[nom.ID]),
			Comments:   orEmptyComments(threaded[nom.ID]),
		}
	}
	return enriched, nil
}

// threadComments attaches user info and likes to every comment, then
// nests replies one level under their parents, grouped by nomination.
func threadComments(comments []models.Comment, likesByComment map[string][]models.CommentLike, profileMap map[string]models.ProfileCompact) map[string][]models.Comment {
	enriched := make([]models.Comment, len(comments))
	for i, cm := range comments {
		if user, ok := profileMap[cm.UserID]; ok {
			u := user
			cm.User = &u
		}
		cm.Likes = likesByComment[cm.ID]
		enriched[i] = cm
	}

	repliesByParent := make(map[string][]models.Comment)
	for _, cm := range enriched {
		if cm.ParentID != nil {
			repliesByParent[*cm.ParentID] = append(repliesByParent[*cm.ParentID], cm)
		}
	}

	byNomination := make(map[string][]models.Comment)
	for _, cm := range enriched {
		if cm.ParentID != nil {
			continue
		}
		cm.Replies = repliesByParent[cm.ID]
		byNomination[cm.NominationID] = append(byNomination[cm.NominationID], cm)
	}
	return byNomination
}

func orEmptyReactions(r []models.Reaction) []models.Reaction {
	if r == nil {
		return []models.Reaction{}
	}
	return r
}

func orEmptyComments(c []models.Comment) []models.Comment {
	if c == nil {
		return []models.Comment{}
	}
	return c
}

func mapLifecycleError(err error) error {
	switch {
	case errors.Is(err, nominations.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Nomination not found")
	case errors.Is(err, nominations.ErrNotPermitted):
		return echo.NewHTTPError(http.StatusForbidden, "Not permitted")
	case errors.Is(err, nominations.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "Invalid status transition")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

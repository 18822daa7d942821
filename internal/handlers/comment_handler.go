package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository     repositories.CommentRepository
	commentLikeRepository repositories.CommentLikeRepository
	nominationRepository  repositories.NominationRepository
	profileRepository     repositories.ProfileRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	nominationRepo repositories.NominationRepository,
	profileRepo repositories.ProfileRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:     commentRepo,
		commentLikeRepository: commentLikeRepo,
		nominationRepository:  nominationRepo,
		profileRepository:     profileRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/nominations/:nomination_id/comments", h.CreateComment)
	g.GET("/nominations/:nomination_id/comments", h.GetCommentsByNominationID)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/likes", h.LikeComment)
	g.DELETE("/comments/:id/likes", h.UnlikeComment)
}

// CreateComment creates a comment, or a reply when parent_id is set.
// A reply's parent must belong to the same nomination.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	nominationID := c.Param("nomination_id")

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		NominationID: nominationID,
		UserID:       profileID,
		Content:      req.Content,
	}

	if req.ParentID != "" {
		parent, err := h.commentRepository.GetCommentByID(req.ParentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.NominationID != nominationID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different nomination")
		}
		comment.ParentID = &req.ParentID
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByNominationID retrieves a nomination's comments with
// replies nested under their parents
func (h *CommentHandler) GetCommentsByNominationID(c echo.Context) error {
	nominationID := c.Param("nomination_id")

	comments, err := h.commentRepository.GetCommentsByNominationID(nominationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, err := h.commentLikeRepository.GetAllCommentLikes()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likesByComment := make(map[string][]models.CommentLike)
	for _, l := range likes {
		likesByComment[l.CommentID] = append(likesByComment[l.CommentID], l)
	}

	profiles, err := h.profileRepository.GetProfiles()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	profileMap := make(map[string]models.ProfileCompact, len(profiles))
	for _, p := range profiles {
		profileMap[p.ID] = p.ToCompact()
	}

	threaded := threadComments(comments, likesByComment, profileMap)
	return c.JSON(http.StatusOK, echo.Map{"comments": orEmptyComments(threaded[nominationID])})
}

// DeleteComment deletes a comment. Allowed for the author or an admin.
// Replies are not cascaded.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	commentID := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.UserID != profileID {
		actor, err := h.profileRepository.GetProfileByID(profileID)
		if err != nil || !actor.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
		}
	}

	if err := h.commentRepository.DeleteComment(commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeComment likes a comment, at most once per user
func (h *CommentHandler) LikeComment(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	commentID := c.Param("id")

	if _, err := h.commentRepository.GetCommentByID(commentID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	hasLiked, err := h.commentLikeRepository.HasUserLikedComment(commentID, profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Comment already liked by this user")
	}

	like := &models.CommentLike{
		CommentID: commentID,
		UserID:    profileID,
	}
	if err := h.commentLikeRepository.CreateCommentLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, like)
}

// UnlikeComment removes the user's like from a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	profileID := getProfileIDFromContext(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	commentID := c.Param("id")

	if err := h.commentLikeRepository.DeleteCommentLike(commentID, profileID); err != nil {
		if err.Error() == "comment like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

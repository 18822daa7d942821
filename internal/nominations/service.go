package nominations

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/teamkudos/recognition/backend/internal/models"
)

// Service errors surfaced to the HTTP layer.
var (
	ErrNotFound          = errors.New("nomination not found")
	ErrNotPermitted      = errors.New("not permitted")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingField      = errors.New("sender, receiver and badge are required")
	ErrMessageTooShort   = errors.New("message is too short")
)

// NominationStore is the slice of nomination persistence the service needs.
type NominationStore interface {
	CreateNomination(nomination *models.Nomination) error
	GetNominationByID(id string) (*models.Nomination, error)
	SetStatus(id string, status models.NominationStatus, approvedAt *time.Time, approvedBy *string) error
	DeleteNomination(id string) error
}

// ProfileStore resolves acting principals for authorization checks.
type ProfileStore interface {
	GetProfileByID(id string) (*models.Profile, error)
}

// ReactionStore removes engagement data when a nomination is deleted.
type ReactionStore interface {
	DeleteByNominationID(nominationID string) error
}

// CommentStore removes comments when a nomination is deleted.
type CommentStore interface {
	GetCommentsByNominationID(nominationID string) ([]models.Comment, error)
	DeleteByNominationID(nominationID string) error
}

// CommentLikeStore removes comment likes when a nomination is deleted.
type CommentLikeStore interface {
	DeleteByCommentIDs(commentIDs []string) error
}

// Ledger is the kudos accounting the lifecycle drives.
type Ledger interface {
	Grant(n *models.Nomination) error
	Revoke(n *models.Nomination) error
}

// Service is the nomination lifecycle state machine. All status
// mutations funnel through here; a status transition is the only
// trigger for kudos changes.
type Service struct {
	nominations   NominationStore
	profiles      ProfileStore
	reactions     ReactionStore
	comments      CommentStore
	commentLikes  CommentLikeStore
	ledger        Ledger
	minMessageLen int
}

// NewService creates a new nomination lifecycle service. minMessageLen
// is the product-level minimum message length (at least 1).
func NewService(
	nominations NominationStore,
	profiles ProfileStore,
	reactions ReactionStore,
	comments CommentStore,
	commentLikes CommentLikeStore,
	ledger Ledger,
	minMessageLen int,
) *Service {
	if minMessageLen < 1 {
		minMessageLen = 1
	}
	return &Service{
		nominations:   nominations,
		profiles:      profiles,
		reactions:     reactions,
		comments:      comments,
		commentLikes:  commentLikes,
		ledger:        ledger,
		minMessageLen: minMessageLen,
	}
}

// Create inserts a new pending nomination. No kudos move yet.
func (s *Service) Create(senderID, receiverID, badgeID, message string) (*models.Nomination, error) {
	if senderID == "" || receiverID == "" || badgeID == "" {
		return nil, ErrMissingField
	}
	message = strings.TrimSpace(message)
	if len(message) < s.minMessageLen {
		return nil, ErrMessageTooShort
	}

	nomination := &models.Nomination{
		SenderID:   senderID,
		ReceiverID: receiverID,
		BadgeID:    badgeID,
		Message:    message,
		Status:     models.StatusPending,
	}
	if err := s.nominations.CreateNomination(nomination); err != nil {
		return nil, err
	}
	return nomination, nil
}

// Approve moves a pending nomination to approved and grants kudos.
// Approving an already-approved nomination is a no-op, so accidental
// double invocation never double-grants.
func (s *Service) Approve(nominationID, actorID string) (*models.Nomination, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}

	nomination, err := s.nominations.GetNominationByID(nominationID)
	if err != nil {
		return nil, ErrNotFound
	}

	switch nomination.Status {
	case models.StatusApproved:
		return nomination, nil
	case models.StatusPending:
		// fall through
	default:
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	if err := s.nominations.SetStatus(nominationID, models.StatusApproved, &now, &actorID); err != nil {
		return nil, err
	}
	nomination.Status = models.StatusApproved
	nomination.ApprovedAt = &now
	nomination.ApprovedBy = &actorID

	// A failed grant leaves the status change in place; the full-ledger
	// reconcile is the correction mechanism for drift.
	if err := s.ledger.Grant(nomination); err != nil {
		log.Printf("Approve: kudos grant for nomination %s incomplete: %v", nominationID, err)
	}
	return nomination, nil
}

// Reject moves a pending nomination to rejected. No kudos effect.
func (s *Service) Reject(nominationID, actorID string) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}

	nomination, err := s.nominations.GetNominationByID(nominationID)
	if err != nil {
		return ErrNotFound
	}
	if nomination.Status != models.StatusPending {
		return ErrInvalidTransition
	}
	return s.nominations.SetStatus(nominationID, models.StatusRejected, nil, nil)
}

// Delete removes a nomination and its reactions and comments. Allowed
// for admins and for the original sender. Deleting a previously
// approved nomination reclaims the kudos it granted.
func (s *Service) Delete(nominationID, actorID string) error {
	actor, err := s.profiles.GetProfileByID(actorID)
	if err != nil {
		return ErrNotPermitted
	}

	nomination, err := s.nominations.GetNominationByID(nominationID)
	if err != nil {
		return ErrNotFound
	}
	if !actor.IsAdmin() && nomination.SenderID != actorID {
		return ErrNotPermitted
	}

	if nomination.Status == models.StatusApproved {
		if err := s.ledger.Revoke(nomination); err != nil {
			log.Printf("Delete: kudos revoke for nomination %s incomplete: %v", nominationID, err)
		}
	}

	comments, err := s.comments.GetCommentsByNominationID(nominationID)
	if err != nil {
		return err
	}
	commentIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
	}
	if err := s.commentLikes.DeleteByCommentIDs(commentIDs); err != nil {
		return err
	}
	if err := s.comments.DeleteByNominationID(nominationID); err != nil {
		return err
	}
	if err := s.reactions.DeleteByNominationID(nominationID); err != nil {
		return err
	}
	return s.nominations.DeleteNomination(nominationID)
}

func (s *Service) requireAdmin(actorID string) error {
	actor, err := s.profiles.GetProfileByID(actorID)
	if err != nil {
		return ErrNotPermitted
	}
	if !actor.IsAdmin() {
		return ErrNotPermitted
	}
	return nil
}

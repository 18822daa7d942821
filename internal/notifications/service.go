package notifications

import (
	"context"

	"github.com/teamkudos/recognition/backend/internal/models"
)

// NominationStore supplies the nomination set derivation runs over.
type NominationStore interface {
	GetNominations() ([]models.Nomination, error)
}

// ReadStateStore persists per-viewer read-markers across derivation
// runs. Derivation itself never writes; only the mark operations do.
type ReadStateStore interface {
	GetReadIDs(ctx context.Context, viewerID string) ([]string, error)
	AddReadID(ctx context.Context, viewerID, notificationID string) error
	SetReadIDs(ctx context.Context, viewerID string, notificationIDs []string) error
}

// Service pairs the pure derivation with the persisted read state.
type Service struct {
	nominations NominationStore
	readState   ReadStateStore
}

// NewService creates a new notification service
func NewService(nominations NominationStore, readState ReadStateStore) *Service {
	return &Service{nominations: nominations, readState: readState}
}

// ForViewer derives the viewer's current notification feed.
func (s *Service) ForViewer(ctx context.Context, viewerID string) ([]models.Notification, error) {
	noms, err := s.nominations.GetNominations()
	if err != nil {
		return nil, err
	}
	readIDs, err := s.readState.GetReadIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return Derive(noms, viewerID, readIDs), nil
}

// UnreadCount returns the number of unread notifications for the viewer.
func (s *Service) UnreadCount(ctx context.Context, viewerID string) (int, error) {
	notifications, err := s.ForViewer(ctx, viewerID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead records a single notification id as read for the viewer.
func (s *Service) MarkRead(ctx context.Context, viewerID, notificationID string) error {
	return s.readState.AddReadID(ctx, viewerID, notificationID)
}

// MarkAllRead records every currently-derived identifier as read.
func (s *Service) MarkAllRead(ctx context.Context, viewerID string) error {
	notifications, err := s.ForViewer(ctx, viewerID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return s.readState.SetReadIDs(ctx, viewerID, ids)
}

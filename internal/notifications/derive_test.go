package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamkudos/recognition/backend/internal/models"
)

func ts(day int) time.Time {
	return time.Date(2024, time.June, day, 12, 0, 0, 0, time.UTC)
}

func sampleNominations() []models.Nomination {
	approvedAt := ts(20)
	return []models.Nomination{
		{
			ID:         "n1",
			SenderID:   "alice",
			ReceiverID: "viewer",
			Status:     models.StatusApproved,
			Sender:     &models.Profile{ID: "alice", Username: "alice"},
			Badge:      &models.Badge{ID: "team-player", Name: "Team Player"},
			CreatedAt:  ts(10),
		},
		{
			ID:         "n2",
			SenderID:   "viewer",
			ReceiverID: "bob",
			Status:     models.StatusApproved,
			Receiver:   &models.Profile{ID: "bob", Username: "bob"},
			CreatedAt:  ts(5),
			ApprovedAt: &approvedAt,
		},
		{
			ID:         "n3",
			SenderID:   "viewer",
			ReceiverID: "carol",
			Status:     models.StatusRejected,
			Receiver:   &models.Profile{ID: "carol", Username: "carol"},
			CreatedAt:  ts(15),
		},
		// Pending and unrelated rows never surface.
		{ID: "n4", SenderID: "viewer", ReceiverID: "bob", Status: models.StatusPending, CreatedAt: ts(25)},
		{ID: "n5", SenderID: "alice", ReceiverID: "bob", Status: models.StatusApproved, CreatedAt: ts(25)},
	}
}

func TestDerive_KindsAndMessages(t *testing.T) {
	result := Derive(sampleNominations(), "viewer", nil)
	require.Len(t, result, 3)

	byID := map[string]models.Notification{}
	for _, n := range result {
		byID[n.ID] = n
	}

	received := byID["received-n1"]
	assert.Equal(t, models.NotificationReceived, received.Type)
	assert.Equal(t, "alice recognized you with Team Player!", received.Message)
	require.NotNil(t, received.FromUser)
	assert.Equal(t, "alice", received.FromUser.Username)

	approved := byID["approved-n2"]
	assert.Equal(t, models.NotificationApproved, approved.Type)
	assert.Equal(t, "Your recognition of bob was approved! +1 kudos", approved.Message)
	// An approved notification is timestamped at the approval, not the
	// original submission.
	assert.Equal(t, ts(20), approved.CreatedAt)

	rejected := byID["rejected-n3"]
	assert.Equal(t, models.NotificationRejected, rejected.Type)
	assert.Equal(t, "Your recognition of carol was not approved.", rejected.Message)
}

func TestDerive_NewestFirst(t *testing.T) {
	result := Derive(sampleNominations(), "viewer", nil)
	require.Len(t, result, 3)
	assert.Equal(t, "approved-n2", result[0].ID) // approved at day 20
	assert.Equal(t, "rejected-n3", result[1].ID) // created day 15
	assert.Equal(t, "received-n1", result[2].ID) // created day 10
}

func TestDerive_ReadFlags(t *testing.T) {
	result := Derive(sampleNominations(), "viewer", []string{"received-n1"})
	for _, n := range result {
		if n.ID == "received-n1" {
			assert.True(t, n.Read)
		} else {
			assert.False(t, n.Read)
		}
	}
}

func TestDerive_Deterministic(t *testing.T) {
	noms := sampleNominations()
	first := Derive(noms, "viewer", []string{"rejected-n3"})
	second := Derive(noms, "viewer", []string{"rejected-n3"})
	assert.Equal(t, first, second)
}

func TestDerive_FallbackNames(t *testing.T) {
	noms := []models.Nomination{
		{ID: "n1", SenderID: "ghost", ReceiverID: "viewer", Status: models.StatusApproved, CreatedAt: ts(1)},
		{ID: "n2", SenderID: "viewer", ReceiverID: "ghost", Status: models.StatusRejected, CreatedAt: ts(2)},
	}
	result := Derive(noms, "viewer", nil)
	require.Len(t, result, 2)
	assert.Equal(t, "Your recognition of someone was not approved.", result[0].Message)
	assert.Equal(t, "Someone recognized you with a badge!", result[1].Message)
}

type memReadState struct {
	readIDs map[string][]string
}

func (m *memReadState) GetReadIDs(ctx context.Context, viewerID string) ([]string, error) {
	return m.readIDs[viewerID], nil
}

func (m *memReadState) AddReadID(ctx context.Context, viewerID, notificationID string) error {
	m.readIDs[viewerID] = append(m.readIDs[viewerID], notificationID)
	return nil
}

func (m *memReadState) SetReadIDs(ctx context.Context, viewerID string, notificationIDs []string) error {
	m.readIDs[viewerID] = notificationIDs
	return nil
}

type memNomStore struct{ noms []models.Nomination }

func (m *memNomStore) GetNominations() ([]models.Nomination, error) { return m.noms, nil }

func TestService_ReadStateRoundTrip(t *testing.T) {
	svc := NewService(
		&memNomStore{noms: sampleNominations()},
		&memReadState{readIDs: map[string][]string{}},
	)
	ctx := context.Background()

	count, err := svc.UnreadCount(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.MarkRead(ctx, "viewer", "received-n1"))
	count, err = svc.UnreadCount(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkAllRead(ctx, "viewer"))
	count, err = svc.UnreadCount(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Read state is per viewer: bob's two received notifications
	// (n2 and n5) are untouched.
	count, err = svc.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

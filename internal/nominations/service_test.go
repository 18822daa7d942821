package nominations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamkudos/recognition/backend/internal/models"
)

type memNominationStore struct {
	byID    map[string]*models.Nomination
	deleted []string
}

func newMemNominationStore(noms ...*models.Nomination) *memNominationStore {
	s := &memNominationStore{byID: map[string]*models.Nomination{}}
	for _, n := range noms {
		s.byID[n.ID] = n
	}
	return s
}

func (s *memNominationStore) CreateNomination(n *models.Nomination) error {
	if n.ID == "" {
		n.ID = "generated"
	}
	s.byID[n.ID] = n
	return nil
}

func (s *memNominationStore) GetNominationByID(id string) (*models.Nomination, error) {
	n, ok := s.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *n
	return &cp, nil
}

func (s *memNominationStore) SetStatus(id string, status models.NominationStatus, approvedAt *time.Time, approvedBy *string) error {
	n, ok := s.byID[id]
	if !ok {
		return errors.New("record not found")
	}
	n.Status = status
	n.ApprovedAt = approvedAt
	n.ApprovedBy = approvedBy
	return nil
}

func (s *memNominationStore) DeleteNomination(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.New("nomination not found")
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type memProfileStore struct {
	byID map[string]*models.Profile
}

func (s *memProfileStore) GetProfileByID(id string) (*models.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

type memReactionStore struct{ deletedFor []string }

func (s *memReactionStore) DeleteByNominationID(nominationID string) error {
	s.deletedFor = append(s.deletedFor, nominationID)
	return nil
}

type memCommentStore struct {
	comments   map[string][]models.Comment
	deletedFor []string
}

func (s *memCommentStore) GetCommentsByNominationID(nominationID string) ([]models.Comment, error) {
	return s.comments[nominationID], nil
}

func (s *memCommentStore) DeleteByNominationID(nominationID string) error {
	s.deletedFor = append(s.deletedFor, nominationID)
	return nil
}

type memCommentLikeStore struct{ deletedCommentIDs []string }

func (s *memCommentLikeStore) DeleteByCommentIDs(commentIDs []string) error {
	s.deletedCommentIDs = append(s.deletedCommentIDs, commentIDs...)
	return nil
}

type spyLedger struct {
	grants  []*models.Nomination
	revokes []*models.Nomination
}

func (l *spyLedger) Grant(n *models.Nomination) error {
	l.grants = append(l.grants, n)
	return nil
}

func (l *spyLedger) Revoke(n *models.Nomination) error {
	l.revokes = append(l.revokes, n)
	return nil
}

type fixture struct {
	svc      *Service
	noms     *memNominationStore
	profiles *memProfileStore
	react    *memReactionStore
	comments *memCommentStore
	likes    *memCommentLikeStore
	ledger   *spyLedger
}

func newFixture(minLen int, noms ...*models.Nomination) *fixture {
	f := &fixture{
		noms: newMemNominationStore(noms...),
		profiles: &memProfileStore{byID: map[string]*models.Profile{
			"admin-1":  {ID: "admin-1", Username: "admin", JobTitle: "admin"},
			"sender-1": {ID: "sender-1", Username: "sam", JobTitle: "engineer"},
			"other-1":  {ID: "other-1", Username: "olga", JobTitle: "designer"},
		}},
		react:    &memReactionStore{},
		comments: &memCommentStore{comments: map[string][]models.Comment{}},
		likes:    &memCommentLikeStore{},
		ledger:   &spyLedger{},
	}
	f.svc = NewService(f.noms, f.profiles, f.react, f.comments, f.likes, f.ledger, minLen)
	return f
}

func TestCreate_StartsPending(t *testing.T) {
	f := newFixture(1)

	nom, err := f.svc.Create("sender-1", "other-1", "team-player", "  great job on the launch  ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, nom.Status)
	assert.Equal(t, "great job on the launch", nom.Message)
	assert.Empty(t, f.ledger.grants, "creation must not move kudos")
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(10)

	_, err := f.svc.Create("", "other-1", "team-player", "a long enough message")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = f.svc.Create("sender-1", "other-1", "", "a long enough message")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = f.svc.Create("sender-1", "other-1", "team-player", "   short   ")
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestApprove_GrantsOnce(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusPending})

	nom, err := f.svc.Approve("n1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, nom.Status)
	require.NotNil(t, nom.ApprovedAt)
	require.NotNil(t, nom.ApprovedBy)
	assert.Equal(t, "admin-1", *nom.ApprovedBy)
	assert.Len(t, f.ledger.grants, 1)

	// Approving again is a no-op: same result, no second grant.
	again, err := f.svc.Approve("n1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, again.Status)
	assert.Len(t, f.ledger.grants, 1)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusPending})

	_, err := f.svc.Approve("n1", "sender-1")
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = f.svc.Approve("n1", "nobody")
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Empty(t, f.ledger.grants)
}

func TestApprove_RejectedIsTerminal(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusRejected})

	_, err := f.svc.Approve("n1", "admin-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_PendingOnly(t *testing.T) {
	f := newFixture(1,
		&models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusPending},
		&models.Nomination{ID: "n2", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusApproved},
	)

	require.NoError(t, f.svc.Reject("n1", "admin-1"))
	stored, err := f.noms.GetNominationByID("n1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)

	assert.ErrorIs(t, f.svc.Reject("n2", "admin-1"), ErrInvalidTransition)
	assert.ErrorIs(t, f.svc.Reject("n1", "sender-1"), ErrNotPermitted)
	assert.ErrorIs(t, f.svc.Reject("missing", "admin-1"), ErrNotFound)
	assert.Empty(t, f.ledger.revokes, "rejection must not move kudos")
}

func TestDelete_SenderAndAdminOnly(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusPending})

	assert.ErrorIs(t, f.svc.Delete("n1", "other-1"), ErrNotPermitted)
	require.NoError(t, f.svc.Delete("n1", "sender-1"))
	assert.ErrorIs(t, f.svc.Delete("n1", "admin-1"), ErrNotFound)
}

func TestDelete_ApprovedRevokesAndCascades(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusApproved})
	f.comments.comments["n1"] = []models.Comment{
		{ID: "c1", NominationID: "n1"},
		{ID: "c2", NominationID: "n1"},
	}

	require.NoError(t, f.svc.Delete("n1", "admin-1"))
	assert.Len(t, f.ledger.revokes, 1)
	assert.ElementsMatch(t, []string{"c1", "c2"}, f.likes.deletedCommentIDs)
	assert.Equal(t, []string{"n1"}, f.comments.deletedFor)
	assert.Equal(t, []string{"n1"}, f.react.deletedFor)
	assert.Equal(t, []string{"n1"}, f.noms.deleted)
}

func TestDelete_PendingDoesNotRevoke(t *testing.T) {
	f := newFixture(1, &models.Nomination{ID: "n1", SenderID: "sender-1", ReceiverID: "other-1", Status: models.StatusPending})

	require.NoError(t, f.svc.Delete("n1", "sender-1"))
	assert.Empty(t, f.ledger.revokes)
}

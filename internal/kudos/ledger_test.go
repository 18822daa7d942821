package kudos

import (
	"errors"
	"testing"

	"github.com/teamkudos/recognition/backend/internal/models"
)

type fakeProfileStore struct {
	profiles map[string]*models.Profile
	failIDs  map[string]bool
}

func newFakeProfileStore(profiles ...*models.Profile) *fakeProfileStore {
	s := &fakeProfileStore{profiles: map[string]*models.Profile{}, failIDs: map[string]bool{}}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *fakeProfileStore) GetProfileByID(id string) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) GetProfiles() ([]models.Profile, error) {
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProfileStore) UpdateKudosBalance(id string, balance int) error {
	if s.failIDs[id] {
		return errors.New("update blocked")
	}
	p, ok := s.profiles[id]
	if !ok {
		return errors.New("profile not found")
	}
	p.KudosBalance = balance
	return nil
}

type fakeNominationStore struct {
	approved []models.Nomination
}

func (s *fakeNominationStore) GetNominationsByStatus(status models.NominationStatus) ([]models.Nomination, error) {
	if status != models.StatusApproved {
		return nil, nil
	}
	return s.approved, nil
}

func (s *fakeProfileStore) balance(t *testing.T, id string) int {
	t.Helper()
	p, ok := s.profiles[id]
	if !ok {
		t.Fatalf("profile %s missing", id)
	}
	return p.KudosBalance
}

func TestGrant_AwardsBothSides(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice"},
		&models.Profile{ID: "b", Username: "bob"},
	)
	ledger := NewLedger(profiles, &fakeNominationStore{})

	nom := &models.Nomination{ID: "n1", SenderID: "a", ReceiverID: "b"}
	if err := ledger.Grant(nom); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if got := profiles.balance(t, "a"); got != SenderAward {
		t.Fatalf("sender balance = %d, want %d", got, SenderAward)
	}
	if got := profiles.balance(t, "b"); got != ReceiverAward {
		t.Fatalf("receiver balance = %d, want %d", got, ReceiverAward)
	}
}

func TestGrantThenRevoke_RestoresBalances(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice"},
		&models.Profile{ID: "b", Username: "bob"},
	)
	ledger := NewLedger(profiles, &fakeNominationStore{})
	nom := &models.Nomination{ID: "n1", SenderID: "a", ReceiverID: "b"}

	if err := ledger.Grant(nom); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if err := ledger.Revoke(nom); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if got := profiles.balance(t, "a"); got != 0 {
		t.Fatalf("sender balance = %d, want 0", got)
	}
	if got := profiles.balance(t, "b"); got != 0 {
		t.Fatalf("receiver balance = %d, want 0", got)
	}
}

func TestRevoke_ClampsAtZero(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice", KudosBalance: 0},
		&models.Profile{ID: "b", Username: "bob", KudosBalance: 1},
	)
	ledger := NewLedger(profiles, &fakeNominationStore{})

	nom := &models.Nomination{ID: "n1", SenderID: "a", ReceiverID: "b"}
	if err := ledger.Revoke(nom); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if got := profiles.balance(t, "a"); got != 0 {
		t.Fatalf("sender balance = %d, want 0 (clamped)", got)
	}
	if got := profiles.balance(t, "b"); got != 0 {
		t.Fatalf("receiver balance = %d, want 0 (clamped)", got)
	}
}

func TestGrant_OneSideFailureDoesNotSkipOther(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice"},
		&models.Profile{ID: "b", Username: "bob"},
	)
	profiles.failIDs["a"] = true
	ledger := NewLedger(profiles, &fakeNominationStore{})

	err := ledger.Grant(&models.Nomination{ID: "n1", SenderID: "a", ReceiverID: "b"})
	if err == nil {
		t.Fatal("expected an error for the failed side")
	}
	if got := profiles.balance(t, "b"); got != ReceiverAward {
		t.Fatalf("receiver balance = %d, want %d despite sender failure", got, ReceiverAward)
	}
}

func TestReconcile_RecomputesFromApproved(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice", KudosBalance: 99},
		&models.Profile{ID: "b", Username: "bob", KudosBalance: 99},
		&models.Profile{ID: "c", Username: "carol", KudosBalance: 7},
	)
	noms := &fakeNominationStore{approved: []models.Nomination{
		{ID: "n1", SenderID: "a", ReceiverID: "b", Status: models.StatusApproved},
		{ID: "n2", SenderID: "b", ReceiverID: "a", Status: models.StatusApproved},
	}}
	ledger := NewLedger(profiles, noms)

	result, err := ledger.Reconcile()
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failed)
	}
	want := SenderAward + ReceiverAward
	if got := profiles.balance(t, "a"); got != want {
		t.Fatalf("alice balance = %d, want %d", got, want)
	}
	if got := profiles.balance(t, "b"); got != want {
		t.Fatalf("bob balance = %d, want %d", got, want)
	}
	// No approved nominations touch carol: her balance resets to zero.
	if got := profiles.balance(t, "c"); got != 0 {
		t.Fatalf("carol balance = %d, want 0", got)
	}

	// A second run over the same data changes nothing.
	if _, err := ledger.Reconcile(); err != nil {
		t.Fatalf("second Reconcile error: %v", err)
	}
	if got := profiles.balance(t, "a"); got != want {
		t.Fatalf("alice balance after rerun = %d, want %d", got, want)
	}
}

func TestReconcile_RecordsPerProfileFailures(t *testing.T) {
	profiles := newFakeProfileStore(
		&models.Profile{ID: "a", Username: "alice"},
		&models.Profile{ID: "b", Username: "bob"},
	)
	profiles.failIDs["b"] = true
	ledger := NewLedger(profiles, &fakeNominationStore{approved: []models.Nomination{
		{ID: "n1", SenderID: "a", ReceiverID: "b", Status: models.StatusApproved},
	}})

	result, err := ledger.Reconcile()
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if len(result.Success) != 1 || result.Success[0] != "alice" {
		t.Fatalf("success = %v, want [alice]", result.Success)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "bob" {
		t.Fatalf("failed = %v, want [bob]", result.Failed)
	}
	if got := profiles.balance(t, "a"); got != SenderAward {
		t.Fatalf("alice balance = %d, want %d", got, SenderAward)
	}
}

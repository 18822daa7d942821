package occasions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teamkudos/recognition/backend/internal/kudos"
	"github.com/teamkudos/recognition/backend/internal/models"
)

type stubProfileStore struct {
	profiles map[string]*models.Profile
	failIDs  map[string]bool
}

func (s *stubProfileStore) GetProfilesWithOccasions() ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range s.profiles {
		if p.Birthday != nil || p.WorkAnniversary != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProfileStore) GetProfileByID(id string) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	cp := *p
	return &cp, nil
}

func (s *stubProfileStore) UpdateKudosBalance(id string, balance int) error {
	if s.failIDs[id] {
		return errors.New("update blocked")
	}
	s.profiles[id].KudosBalance = balance
	return nil
}

type stubNominationStore struct {
	created []*models.Nomination
}

func (s *stubNominationStore) CreateNomination(n *models.Nomination) error {
	s.created = append(s.created, n)
	return nil
}

// All nominations created through this stub count as this year's.
func (s *stubNominationStore) GetApprovedByMessageInYear(marker string, year int) ([]models.Nomination, error) {
	var out []models.Nomination
	for _, n := range s.created {
		if n.Status == models.StatusApproved && strings.Contains(n.Message, marker) {
			out = append(out, *n)
		}
	}
	return out, nil
}

type stubBadgeStore struct{}

func (s *stubBadgeStore) GetBadges() ([]models.Badge, error) {
	return []models.Badge{{ID: "team-player", Name: "Team Player"}}, nil
}

type stubMarkerStore struct {
	last map[string]string
}

func (s *stubMarkerStore) GetLastOccasionCheck(ctx context.Context, viewerID string) (string, error) {
	return s.last[viewerID], nil
}

func (s *stubMarkerStore) SetLastOccasionCheck(ctx context.Context, viewerID, date string) error {
	if s.last == nil {
		s.last = map[string]string{}
	}
	s.last[viewerID] = date
	return nil
}

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 9, 0, 0, 0, time.UTC) }
}

func strPtr(s string) *string { return &s }

func TestRun_BirthdayAward(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"p1": {ID: "p1", Username: "dana", Birthday: strPtr("1990-05-15"), KudosBalance: 3},
		},
		failIDs: map[string]bool{},
	}
	noms := &stubNominationStore{}
	awarder := NewAwarder(profiles, noms, &stubBadgeStore{}, fixedNow(2024, time.May, 15))

	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Birthdays) != 1 || result.Birthdays[0] != "dana" {
		t.Fatalf("birthdays = %v, want [dana]", result.Birthdays)
	}
	if got := profiles.profiles["p1"].KudosBalance; got != 3+kudos.OccasionAward {
		t.Fatalf("balance = %d, want %d", got, 3+kudos.OccasionAward)
	}
	if len(noms.created) != 1 {
		t.Fatalf("created %d nominations, want 1", len(noms.created))
	}
	post := noms.created[0]
	if post.Status != models.StatusApproved || post.ReceiverID != "p1" || post.SenderID != "actor-1" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.KudosAwarded != kudos.OccasionAward {
		t.Fatalf("kudos awarded = %d, want %d", post.KudosAwarded, kudos.OccasionAward)
	}
	if !strings.Contains(post.Message, "🎂") || !strings.Contains(post.Message, BirthdayMarker) {
		t.Fatalf("unexpected birthday message: %q", post.Message)
	}
}

func TestRun_SameYearNeverDoubleAwards(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"p1": {ID: "p1", Username: "dana", Birthday: strPtr("1990-05-15")},
		},
		failIDs: map[string]bool{},
	}
	noms := &stubNominationStore{}
	awarder := NewAwarder(profiles, noms, &stubBadgeStore{}, fixedNow(2024, time.May, 15))

	if _, err := awarder.Run("actor-1"); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if len(result.Birthdays) != 0 {
		t.Fatalf("second run awarded again: %v", result.Birthdays)
	}
	if got := profiles.profiles["p1"].KudosBalance; got != kudos.OccasionAward {
		t.Fatalf("balance = %d, want %d", got, kudos.OccasionAward)
	}
	if len(noms.created) != 1 {
		t.Fatalf("created %d nominations, want 1", len(noms.created))
	}
}

func TestRun_AnniversaryYearsOfService(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"two":  {ID: "two", Username: "tariq", WorkAnniversary: strPtr("2022-03-01")},
			"one":  {ID: "one", Username: "uma", WorkAnniversary: strPtr("2023-03-01")},
			"zero": {ID: "zero", Username: "zoe", WorkAnniversary: strPtr("2024-03-01")},
		},
		failIDs: map[string]bool{},
	}
	noms := &stubNominationStore{}
	awarder := NewAwarder(profiles, noms, &stubBadgeStore{}, fixedNow(2024, time.March, 1))

	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Anniversaries) != 2 {
		t.Fatalf("anniversaries = %v, want two entries", result.Anniversaries)
	}
	got := strings.Join(result.Anniversaries, "; ")
	if !strings.Contains(got, "tariq (2 years)") {
		t.Fatalf("missing plural entry in %q", got)
	}
	if !strings.Contains(got, "uma (1 year)") {
		t.Fatalf("missing singular entry in %q", got)
	}
	// Hired this year: not yet a full year of service, nothing awarded.
	if profiles.profiles["zero"].KudosBalance != 0 {
		t.Fatalf("zoe was awarded with zero years of service")
	}
	for _, n := range noms.created {
		if !strings.Contains(n.Message, "🎉") || !strings.Contains(n.Message, AnniversaryMarker) {
			t.Fatalf("unexpected anniversary message: %q", n.Message)
		}
	}
}

func TestRun_NonMatchingDatesSkipped(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"p1": {ID: "p1", Username: "dana", Birthday: strPtr("1990-05-16")},
		},
		failIDs: map[string]bool{},
	}
	noms := &stubNominationStore{}
	awarder := NewAwarder(profiles, noms, &stubBadgeStore{}, fixedNow(2024, time.May, 15))

	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Birthdays) != 0 || len(noms.created) != 0 {
		t.Fatalf("off-by-one date was awarded: %+v", result)
	}
}

func TestRun_PartialFailureContinues(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"bad":  {ID: "bad", Username: "boris", Birthday: strPtr("1990-05-15")},
			"good": {ID: "good", Username: "gwen", Birthday: strPtr("1985-05-15")},
		},
		failIDs: map[string]bool{"bad": true},
	}
	noms := &stubNominationStore{}
	awarder := NewAwarder(profiles, noms, &stubBadgeStore{}, fixedNow(2024, time.May, 15))

	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "boris") {
		t.Fatalf("errors = %v, want one entry for boris", result.Errors)
	}
	if len(result.Birthdays) != 1 || result.Birthdays[0] != "gwen" {
		t.Fatalf("birthdays = %v, want [gwen]", result.Birthdays)
	}
}

func TestRun_InvalidDateReported(t *testing.T) {
	profiles := &stubProfileStore{
		profiles: map[string]*models.Profile{
			"p1": {ID: "p1", Username: "dana", Birthday: strPtr("15/05/1990")},
		},
		failIDs: map[string]bool{},
	}
	awarder := NewAwarder(profiles, &stubNominationStore{}, &stubBadgeStore{}, fixedNow(2024, time.May, 15))

	result, err := awarder.Run("actor-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "invalid birthday") {
		t.Fatalf("errors = %v, want invalid-birthday entry", result.Errors)
	}
}

func TestRunOncePerDay(t *testing.T) {
	profiles := &stubProfileStore{profiles: map[string]*models.Profile{}, failIDs: map[string]bool{}}
	awarder := NewAwarder(profiles, &stubNominationStore{}, &stubBadgeStore{}, fixedNow(2024, time.May, 15))
	markers := &stubMarkerStore{}
	ctx := context.Background()

	_, ran, err := awarder.RunOncePerDay(ctx, markers, "actor-1")
	if err != nil {
		t.Fatalf("RunOncePerDay error: %v", err)
	}
	if !ran {
		t.Fatal("first run of the day should execute")
	}
	if markers.last["actor-1"] != "2024-05-15" {
		t.Fatalf("marker = %q, want 2024-05-15", markers.last["actor-1"])
	}

	_, ran, err = awarder.RunOncePerDay(ctx, markers, "actor-1")
	if err != nil {
		t.Fatalf("second RunOncePerDay error: %v", err)
	}
	if ran {
		t.Fatal("second run on the same day should be skipped")
	}
}

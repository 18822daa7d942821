package kudos

import (
	"errors"
	"fmt"
	"log"

	"github.com/teamkudos/recognition/backend/internal/models"
)

// Award amounts per approved nomination and per occasion event.
const (
	SenderAward   = 1
	ReceiverAward = 2
	OccasionAward = 5
)

// ProfileStore is the slice of profile persistence the ledger needs.
type ProfileStore interface {
	GetProfileByID(id string) (*models.Profile, error)
	GetProfiles() ([]models.Profile, error)
	UpdateKudosBalance(id string, balance int) error
}

// NominationStore is the slice of nomination persistence the ledger needs.
type NominationStore interface {
	GetNominationsByStatus(status models.NominationStatus) ([]models.Nomination, error)
}

// Ledger translates nomination state transitions into kudos balance
// changes. Every balance write is computed from a fresh read, never
// from a cached value.
type Ledger struct {
	profiles    ProfileStore
	nominations NominationStore
}

// NewLedger creates a new Ledger
func NewLedger(profiles ProfileStore, nominations NominationStore) *Ledger {
	return &Ledger{profiles: profiles, nominations: nominations}
}

// Grant awards kudos for an approved nomination: SenderAward to the
// sender and ReceiverAward to the receiver. The two updates are
// independent; a failure on one side does not skip the other.
func (l *Ledger) Grant(n *models.Nomination) error {
	senderErr := l.adjust(n.SenderID, SenderAward)
	receiverErr := l.adjust(n.ReceiverID, ReceiverAward)
	return errors.Join(senderErr, receiverErr)
}

// Revoke mirrors Grant for a deleted approved nomination. Balances are
// clamped at zero, so Grant followed by Revoke is not a perfect inverse
// when interleaved operations drove a balance down in between; that is
// accepted and corrected by Reconcile.
func (l *Ledger) Revoke(n *models.Nomination) error {
	senderErr := l.adjust(n.SenderID, -SenderAward)
	receiverErr := l.adjust(n.ReceiverID, -ReceiverAward)
	return errors.Join(senderErr, receiverErr)
}

func (l *Ledger) adjust(profileID string, delta int) error {
	profile, err := l.profiles.GetProfileByID(profileID)
	if err != nil {
		return fmt.Errorf("reading profile %s: %w", profileID, err)
	}
	balance := profile.KudosBalance + delta
	if balance < 0 {
		balance = 0
	}
	if err := l.profiles.UpdateKudosBalance(profileID, balance); err != nil {
		return fmt.Errorf("updating balance for %s: %w", profileID, err)
	}
	return nil
}

// SyncResult reports per-profile outcomes of a Reconcile run.
type SyncResult struct {
	Success []string `json:"success"`
	Failed  []string `json:"failed"`
}

// Reconcile recomputes every profile's balance from scratch out of the
// approved nominations and overwrites the stored values. Profiles with
// no approved nominations end at zero. A single profile's failure is
// recorded and the scan continues. Running it twice in a row yields the
// same balances.
func (l *Ledger) Reconcile() (*SyncResult, error) {
	approved, err := l.nominations.GetNominationsByStatus(models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("fetching approved nominations: %w", err)
	}

	profiles, err := l.profiles.GetProfiles()
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}

	totals := make(map[string]int, len(profiles))
	for _, p := range profiles {
		totals[p.ID] = 0
	}
	for _, n := range approved {
		totals[n.SenderID] += SenderAward
		totals[n.ReceiverID] += ReceiverAward
	}

	result := &SyncResult{Success: []string{}, Failed: []string{}}
	for _, p := range profiles {
		if err := l.profiles.UpdateKudosBalance(p.ID, totals[p.ID]); err != nil {
			log.Printf("Reconcile: failed to update %s: %v", p.Username, err)
			result.Failed = append(result.Failed, p.Username)
			continue
		}
		result.Success = append(result.Success, p.Username)
	}
	return result, nil
}

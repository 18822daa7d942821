package occasions

import (
	"context"
	"fmt"
	"time"

	"github.com/teamkudos/recognition/backend/internal/kudos"
	"github.com/teamkudos/recognition/backend/internal/models"
)

// Message markers used both when generating occasion posts and when
// checking for duplicates within the calendar year.
const (
	BirthdayMarker    = "Happy Birthday"
	AnniversaryMarker = "Work Anniversary"
)

const dateLayout = "2006-01-02"

// ProfileStore is the slice of profile persistence the awarder needs.
type ProfileStore interface {
	GetProfilesWithOccasions() ([]models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	UpdateKudosBalance(id string, balance int) error
}

// NominationStore inserts occasion posts and serves the duplicate check.
type NominationStore interface {
	CreateNomination(nomination *models.Nomination) error
	GetApprovedByMessageInYear(marker string, year int) ([]models.Nomination, error)
}

// BadgeStore provides the default badge for occasion posts.
type BadgeStore interface {
	GetBadges() ([]models.Badge, error)
}

// MarkerStore persists the last-occasion-check date for the
// opportunistic daily run.
type MarkerStore interface {
	GetLastOccasionCheck(ctx context.Context, viewerID string) (string, error)
	SetLastOccasionCheck(ctx context.Context, viewerID, date string) error
}

// RunResult reports a single awarder run: who was awarded and any
// per-profile failures encountered along the way.
type RunResult struct {
	Birthdays     []string `json:"birthdays"`
	Anniversaries []string `json:"anniversaries"`
	Errors        []string `json:"errors"`
}

// Awarder scans profiles for today's birthdays and work anniversaries
// and emits auto-approved nominations with direct kudos awards.
type Awarder struct {
	profiles    ProfileStore
	nominations NominationStore
	badges      BadgeStore
	now         func() time.Time
}

// NewAwarder creates a new Awarder. now supplies the invocation's local
// calendar date; pass time.Now outside of tests.
func NewAwarder(profiles ProfileStore, nominations NominationStore, badges BadgeStore, now func() time.Time) *Awarder {
	return &Awarder{profiles: profiles, nominations: nominations, badges: badges, now: now}
}

// Run executes one occasion scan acting as actorID. A profile already
// awarded for the same occasion type this calendar year is skipped, so
// repeated runs on the same day, or later in the year, never
// double-award. One profile's failure is recorded and the scan
// continues.
func (a *Awarder) Run(actorID string) (*RunResult, error) {
	today := a.now()
	todayMonth, todayDay := int(today.Month()), today.Day()
	currentYear := today.Year()

	profiles, err := a.profiles.GetProfilesWithOccasions()
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}

	birthdayDone, err := a.awardedThisYear(BirthdayMarker, currentYear)
	if err != nil {
		return nil, err
	}
	anniversaryDone, err := a.awardedThisYear(AnniversaryMarker, currentYear)
	if err != nil {
		return nil, err
	}

	defaultBadgeID := ""
	if badges, err := a.badges.GetBadges(); err == nil && len(badges) > 0 {
		defaultBadgeID = badges[0].ID
	}

	result := &RunResult{Birthdays: []string{}, Anniversaries: []string{}, Errors: []string{}}

	for _, profile := range profiles {
		if profile.Birthday != nil {
			month, day, _, ok := parseDate(*profile.Birthday)
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("invalid birthday for %s", profile.Username))
			} else if month == todayMonth && day == todayDay && !birthdayDone[profile.ID] {
				message := fmt.Sprintf("🎂 Happy Birthday, %s! Wishing you a wonderful day filled with joy and celebration!", profile.Username)
				if err := a.award(profile.ID, actorID, defaultBadgeID, message); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("failed to award birthday kudos to %s: %v", profile.Username, err))
				} else {
					birthdayDone[profile.ID] = true
					result.Birthdays = append(result.Birthdays, profile.Username)
				}
			}
		}

		if profile.WorkAnniversary != nil {
			month, day, year, ok := parseDate(*profile.WorkAnniversary)
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("invalid work anniversary for %s", profile.Username))
				continue
			}
			if month != todayMonth || day != todayDay {
				continue
			}
			// An anniversary dated in the current year is not yet a full
			// year of service.
			yearsOfService := currentYear - year
			if yearsOfService <= 0 || anniversaryDone[profile.ID] {
				continue
			}
			yearText := "years"
			if yearsOfService == 1 {
				yearText = "year"
			}
			message := fmt.Sprintf("🎉 Happy Work Anniversary, %s! Congratulations on %d %s with the company! Thank you for your dedication and hard work!",
				profile.Username, yearsOfService, yearText)
			if err := a.award(profile.ID, actorID, defaultBadgeID, message); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to award anniversary kudos to %s: %v", profile.Username, err))
			} else {
				anniversaryDone[profile.ID] = true
				result.Anniversaries = append(result.Anniversaries, fmt.Sprintf("%s (%d %s)", profile.Username, yearsOfService, yearText))
			}
		}
	}
	return result, nil
}

// RunOncePerDay runs the scan only if it has not run today according to
// the persisted marker. The marker is advisory; the per-year duplicate
// check in Run is what actually prevents double awards.
func (a *Awarder) RunOncePerDay(ctx context.Context, markers MarkerStore, actorID string) (*RunResult, bool, error) {
	todayStr := a.now().Format(dateLayout)
	last, err := markers.GetLastOccasionCheck(ctx, actorID)
	if err != nil {
		return nil, false, err
	}
	if last == todayStr {
		return nil, false, nil
	}

	result, err := a.Run(actorID)
	if err != nil {
		return nil, false, err
	}
	if err := markers.SetLastOccasionCheck(ctx, actorID, todayStr); err != nil {
		return result, true, err
	}
	return result, true, nil
}

// award bumps the profile's balance by OccasionAward (read-then-write)
// and inserts the auto-approved feed post.
func (a *Awarder) award(profileID, actorID, badgeID, message string) error {
	profile, err := a.profiles.GetProfileByID(profileID)
	if err != nil {
		return err
	}
	if err := a.profiles.UpdateKudosBalance(profileID, profile.KudosBalance+kudos.OccasionAward); err != nil {
		return err
	}
	return a.nominations.CreateNomination(&models.Nomination{
		SenderID:     actorID,
		ReceiverID:   profileID,
		BadgeID:      badgeID,
		Message:      message,
		Status:       models.StatusApproved,
		KudosAwarded: kudos.OccasionAward,
	})
}

func (a *Awarder) awardedThisYear(marker string, year int) (map[string]bool, error) {
	existing, err := a.nominations.GetApprovedByMessageInYear(marker, year)
	if err != nil {
		return nil, fmt.Errorf("checking existing %s posts: %w", marker, err)
	}
	receivers := make(map[string]bool, len(existing))
	for _, n := range existing {
		receivers[n.ReceiverID] = true
	}
	return receivers, nil
}

func parseDate(s string) (month, day, year int, ok bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(t.Month()), t.Day(), t.Year(), true
}

package notifications

import (
	"fmt"
	"sort"

	"github.com/teamkudos/recognition/backend/internal/models"
)

// Derive synthesizes the viewer's notification feed from the full
// nomination set. It is pure and deterministic: the same nominations
// and read set always produce the same identifiers, flags and order
// (newest first by the relevant event timestamp).
func Derive(nominations []models.Nomination, viewerID string, readIDs []string) []models.Notification {
	read := make(map[string]bool, len(readIDs))
	for _, id := range readIDs {
		read[id] = true
	}

	var result []models.Notification
	for _, nom := range nominations {
		if nom.ReceiverID == viewerID && nom.Status == models.StatusApproved {
			id := fmt.Sprintf("received-%s", nom.ID)
			result = append(result, models.Notification{
				ID:           id,
				Type:         models.NotificationReceived,
				NominationID: nom.ID,
				Message:      fmt.Sprintf("%s recognized you with %s!", senderName(&nom), badgeName(&nom)),
				FromUser:     compact(nom.Sender),
				Badge:        nom.Badge,
				Read:         read[id],
				CreatedAt:    nom.CreatedAt,
			})
		}

		if nom.SenderID == viewerID && nom.Status == models.StatusApproved {
			id := fmt.Sprintf("approved-%s", nom.ID)
			at := nom.CreatedAt
			if nom.ApprovedAt != nil {
				at = *nom.ApprovedAt
			}
			result = append(result, models.Notification{
				ID:           id,
				Type:         models.NotificationApproved,
				NominationID: nom.ID,
				Message:      fmt.Sprintf("Your recognition of %s was approved! +1 kudos", receiverName(&nom)),
				FromUser:     compact(nom.Receiver),
				Badge:        nom.Badge,
				Read:         read[id],
				CreatedAt:    at,
			})
		}

		if nom.SenderID == viewerID && nom.Status == models.StatusRejected {
			id := fmt.Sprintf("rejected-%s", nom.ID)
			result = append(result, models.Notification{
				ID:           id,
				Type:         models.NotificationRejected,
				NominationID: nom.ID,
				Message:      fmt.Sprintf("Your recognition of %s was not approved.", receiverName(&nom)),
				FromUser:     compact(nom.Receiver),
				Badge:        nom.Badge,
				Read:         read[id],
				CreatedAt:    nom.CreatedAt,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func senderName(n *models.Nomination) string {
	if n.Sender != nil && n.Sender.Username != "" {
		return n.Sender.Username
	}
	return "Someone"
}

func receiverName(n *models.Nomination) string {
	if n.Receiver != nil && n.Receiver.Username != "" {
		return n.Receiver.Username
	}
	return "someone"
}

func badgeName(n *models.Nomination) string {
	if n.Badge != nil && n.Badge.Name != "" {
		return n.Badge.Name
	}
	return "a badge"
}

func compact(p *models.Profile) *models.ProfileCompact {
	if p == nil {
		return nil
	}
	c := p.ToCompact()
	return &c
}

package models

import "time"

// NotificationType tags the event a derived notification describes.
type NotificationType string

const (
	NotificationReceived NotificationType = "received_nomination"
	NotificationApproved NotificationType = "nomination_approved"
	NotificationRejected NotificationType = "nomination_rejected"
)

// Notification is derived from nomination state per viewer on every
// read; it is never persisted. The ID is a deterministic combination of
// a kind tag and the source nomination id, which makes re-derivation
// idempotent and gives read tracking a stable key.
type Notification struct {
	ID           string           `json:"id"`
	Type         NotificationType `json:"type"`
	NominationID string           `json:"nomination_id"`
	Message      string           `json:"message"`
	FromUser     *ProfileCompact  `json:"from_user,omitempty"`
	Badge        *Badge           `json:"badge,omitempty"`
	Read         bool             `json:"read"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NotificationReadState is the per-viewer document stored in MongoDB.
// It carries the set of read notification ids and the date of the last
// opportunistic occasion check.
type NotificationReadState struct {
	ViewerID          string   `json:"viewer_id" bson:"viewer_id"`
	ReadIDs           []string `json:"read_ids" bson:"read_ids"`
	LastOccasionCheck string   `json:"last_occasion_check,omitempty" bson:"last_occasion_check,omitempty"` // "YYYY-MM-DD"
}

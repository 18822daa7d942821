package models

import "time"

// NominationStatus is the lifecycle state of a nomination.
type NominationStatus string

const (
	StatusPending  NominationStatus = "pending"
	StatusApproved NominationStatus = "approved"
	StatusRejected NominationStatus = "rejected"
)

// Nomination is a peer recognition request. It is created pending,
// moves to approved or rejected exactly once, and can be deleted by an
// admin or its sender. Status transitions are the only trigger for
// kudos balance changes.
type Nomination struct {
	ID           string           `json:"id" gorm:"primaryKey"`
	SenderID     string           `json:"sender_id" gorm:"index"`
	ReceiverID   string           `json:"receiver_id" gorm:"index"`
	BadgeID      string           `json:"badge_id" gorm:"index"`
	Message      string           `json:"message"`
	Status       NominationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	KudosAwarded int              `json:"kudos_awarded"` // direct award amount for occasion nominations
	CreatedAt    time.Time        `json:"created_at" gorm:"index"`
	ApprovedAt   *time.Time       `json:"approved_at,omitempty"`
	ApprovedBy   *string          `json:"approved_by,omitempty"`

	// Joined data for display
	Sender   *Profile `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *Profile `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Badge    *Badge   `json:"badge,omitempty" gorm:"foreignKey:BadgeID"`
}

// CreateNominationRequest defines the request body for sending a nomination
type CreateNominationRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	BadgeID    string `json:"badge_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

package models

import "time"

// ReactionType enumerates the supported reaction glyphs.
type ReactionType string

const (
	ReactionHeart  ReactionType = "heart"
	ReactionClap   ReactionType = "clap"
	ReactionFire   ReactionType = "fire"
	ReactionRocket ReactionType = "rocket"
)

// Reaction represents a user's reaction to a nomination. At most one
// reaction per (nomination, user) pair.
type Reaction struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	NominationID string       `json:"nomination_id" gorm:"index;uniqueIndex:idx_nomination_user_reaction"`
	UserID       string       `json:"user_id" gorm:"index;uniqueIndex:idx_nomination_user_reaction"`
	Type         ReactionType `json:"type" gorm:"type:varchar(10)"`
	CreatedAt    time.Time    `json:"created_at"`
}

// AddReactionRequest defines the request body for reacting to a nomination
type AddReactionRequest struct {
	Type ReactionType `json:"type" validate:"required,oneof=heart clap fire rocket"`
}

package models

import "time"

// Comment represents a comment on a nomination. ParentID links one
// level of reply nesting; a reply's parent must belong to the same
// nomination.
type Comment struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	NominationID string    `json:"nomination_id" gorm:"index"`
	UserID       string    `json:"user_id" gorm:"index"`
	Content      string    `json:"content"`
	ParentID     *string   `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined data for display
	User    *ProfileCompact `json:"user,omitempty" gorm:"-"`
	Likes   []CommentLike   `json:"likes,omitempty" gorm:"-"`
	Replies []Comment       `json:"replies,omitempty" gorm:"-"`
}

// CreateCommentRequest defines the request body for commenting on a nomination
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID string `json:"parent_id,omitempty"`
}

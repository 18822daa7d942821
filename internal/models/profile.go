package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the closed set of privilege levels derived from a profile's
// job title. Parsing happens once at the boundary instead of scattering
// case-insensitive string comparisons through call sites.
type Role int

const (
	RoleEmployee Role = iota
	RolePendingAdmin
	RoleAdmin
)

// ParseRole normalizes a free-form job title into a Role. "admin" is
// matched case-insensitively; everything unrecognized is non-privileged.
func ParseRole(jobTitle string) Role {
	switch strings.ToLower(strings.TrimSpace(jobTitle)) {
	case "admin":
		return RoleAdmin
	case "pending_admin":
		return RolePendingAdmin
	default:
		return RoleEmployee
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RolePendingAdmin:
		return "pending_admin"
	default:
		return "employee"
	}
}

// Profile represents an employee record in PostgreSQL
type Profile struct {
	ID              string    `json:"id" gorm:"primaryKey"` // UUID, matches the auth provider's subject id
	Username        string    `json:"username"`
	Email           string    `json:"email" gorm:"uniqueIndex"`
	AvatarURL       string    `json:"avatar_url"`
	JobTitle        string    `json:"job_title"` // "admin" grants privileges, anything else does not
	Department      string    `json:"department"`
	KudosBalance    int       `json:"kudos_balance" gorm:"default:0"`
	Birthday        *string   `json:"birthday,omitempty"`         // "YYYY-MM-DD", year may be a placeholder
	WorkAnniversary *string   `json:"work_anniversary,omitempty"` // "YYYY-MM-DD"
	Password        string    `json:"-"`                          // bcrypt hash, ignored for JSON serialization
	FirebaseUID     string    `json:"firebase_uid,omitempty" gorm:"index"` // empty for local accounts
	CreatedAt       time.Time `json:"created_at"`
}

// Role returns the parsed role for this profile.
func (p *Profile) Role() Role {
	return ParseRole(p.JobTitle)
}

// IsAdmin reports whether this profile holds the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role() == RoleAdmin
}

// ProfileCompact is a trimmed profile for embedding in feed items
type ProfileCompact struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	AvatarURL  string `json:"avatar_url"`
	Department string `json:"department"`
}

// ToCompact converts a Profile to its compact representation
func (p *Profile) ToCompact() ProfileCompact {
	return ProfileCompact{
		ID:         p.ID,
		Username:   p.Username,
		AvatarURL:  p.AvatarURL,
		Department: p.Department,
	}
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username   string `json:"username" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department" validate:"omitempty,max=100"`
	JobTitle   string `json:"job_title" validate:"omitempty,max=100"`
}

// SignInRequest defines the request body for local authentication
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile edits
type UpdateProfileRequest struct {
	Username        string  `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL       string  `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Department      string  `json:"department,omitempty" validate:"omitempty,max=100"`
	Birthday        *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WorkAnniversary *string `json:"work_anniversary,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateRoleRequest defines the request body for the admin role endpoint
type UpdateRoleRequest struct {
	UserID  string `json:"userId" validate:"required"`
	NewRole string `json:"newRole" validate:"required,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

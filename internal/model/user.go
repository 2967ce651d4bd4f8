package model

import (
	"time"
)

// Role constants. A user without a role has not yet redeemed an access code
// and may only reach the access-code entry endpoints.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RolePsychosocial = "psychosocial"
	RoleGeneral      = "general"
)

// Roles lists every assignable role.
var Roles = []string{RoleAdmin, RoleDoctor, RolePsychosocial, RoleGeneral}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a registered account. Role, Active and ExpiresAt are only
// mutated by access-code redemption.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	Name         *string    `json:"name,omitempty" db:"name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         *string    `json:"role,omitempty" db:"role"`
	Active       bool       `json:"active" db:"active"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Profile      *Profile   `json:"profile,omitempty" db:"-"`
	ProfileJSON  []byte     `json:"-" db:"profile"`
}

// Profile holds the optional nested profile document.
type Profile struct {
	Name           string     `json:"name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	DocumentType   string     `json:"document_type,omitempty"`
	DocumentNumber string     `json:"document_number,omitempty"`
	LicenseID      *string    `json:"license_id,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
	ThumbnailURL   string     `json:"thumbnail_url,omitempty"`
}

// Expired reports whether the user's elevated access has lapsed. A user with
// no expiration never expires.
func (u *User) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && u.ExpiresAt.Before(now)
}

// NeedsAccessCode reports whether the user must redeem an access code before
// reaching role-gated routes.
func (u *User) NeedsAccessCode(now time.Time) bool {
	return u.Role == nil || !u.Active || u.Expired(now)
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(role string) bool {
	return u.Role != nil && *u.Role == role
}

// RegisterRequest represents account registration parameters
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents profile update parameters
type UpdateProfileRequest struct {
	Name           string     `json:"name" binding:"required"`
	BirthDate      *time.Time `json:"birth_date"`
	DocumentType   string     `json:"document_type"`
	DocumentNumber string     `json:"document_number"`
	LicenseID      *string    `json:"license_id"`
	Gender         *string    `json:"gender" binding:"omitempty,oneof=female male other"`
}

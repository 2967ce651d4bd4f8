package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AccessCodeLength is the length of generated codes.
const AccessCodeLength = 6

// AccessCode is a limited-use token that grants a registered account a role.
// UsedBy is append-only; a user id appears at most once and len(UsedBy) never
// exceeds MaxUses.
type AccessCode struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Code         string         `json:"code" db:"code"`
	Role         string         `json:"role" db:"role"`
	UsedBy       pq.StringArray `json:"used_by" db:"used_by"`
	MaxUses      int            `json:"max_uses" db:"max_uses"`
	ExpiresAt    time.Time      `json:"expires_at" db:"expires_at"`
	DurationDays *int           `json:"duration_days,omitempty" db:"duration_days"`
	CreatedBy    uuid.UUID      `json:"created_by" db:"created_by"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Exhausted reports whether the code has reached its usage limit.
func (c *AccessCode) Exhausted() bool {
	return len(c.UsedBy) >= c.MaxUses
}

// RedeemedBy reports whether the given user already redeemed this code.
func (c *AccessCode) RedeemedBy(userID uuid.UUID) bool {
	id := userID.String()
	for _, u := range c.UsedBy {
		if u == id {
			return true
		}
	}
	return false
}

// GenerateAccessCodeRequest represents code generation parameters
type GenerateAccessCodeRequest struct {
	Role              string `json:"role" binding:"required,role"`
	MaxUses           int    `json:"max_uses" binding:"required,min=1"`
	CodeExpiresInDays int    `json:"code_expires_in_days" binding:"omitempty,min=1"`
	DurationDays      *int   `json:"duration_days" binding:"omitempty,min=1"`
	NotifyEmail       string `json:"notify_email" binding:"omitempty,email"`
}

// RedeemAccessCodeRequest represents redemption parameters
type RedeemAccessCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

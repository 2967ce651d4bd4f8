package model

import (
	"github.com/google/uuid"
)

// TokenClaims are the identity claims carried by an access token.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// TokenResponse is the token pair returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

// SessionResponse describes the caller's current session state.
type SessionResponse struct {
	User            *User `json:"user"`
	NeedsAccessCode bool  `json:"needs_access_code"`
}

// RefreshRequest represents token refresh parameters
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

package dto

import "time"

// LoginSuccessResponse is returned after a successful credential or OAuth login.
// The refresh token travels in an HTTP-only cookie, never in the body.
type LoginSuccessResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// GoogleAuthRequest carries the ID token obtained by the frontend Google flow.
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

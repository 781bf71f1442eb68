package dto

import "time"

// ExchangeCodeRequest carries the authorization code the frontend received from Google.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

// LoginURLResponse is where the frontend should send the user to sign in.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

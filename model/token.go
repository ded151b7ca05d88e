package model

import "time"

// RefreshToken holds one active session chain for an identity. Only the
// SHA-256 hash of the opaque token value is persisted.
type RefreshToken struct {
	ID         int       `json:"id"`
	IdentityID int       `json:"identity_id"`
	TokenHash  string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TokenPair is the login/refresh response shape. Field names follow the
// wire contract consumed by the frontend.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	IsAdmin      bool   `json:"admin"`
}

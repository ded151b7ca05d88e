package model

import "time"

// Identity is an authenticated principal: a voter or an administrator.
type Identity struct {
	ID        int       `json:"id"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	IsAdmin   bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

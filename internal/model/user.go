package model

import "time"

// User represents a vault owner. The password is stored only as an
// argon2id hash; AvatarRef points at an object in avatar storage and is
// empty until the user uploads a picture.
type User struct {
	ID           string    `json:"id"`
	Handle       string    `json:"handle"`
	PasswordHash string    `json:"-"`
	AvatarRef    string    `json:"avatar_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session identifies an authenticated user for the lifetime of a bearer
// token. Stored in Redis keyed by the opaque token.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

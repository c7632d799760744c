package model

import "time"

// DiaryEntry represents a private journal entry owned by a single user.
// Entries are append-only: there is no edit or delete operation.
type DiaryEntry struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"owner_id"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

// Package model defines domain entities for the application.
package model

import "time"

// UnlockDateLayout is the wire format for capsule unlock dates.
// A bare date; the unlock instant is the start of that day in UTC.
const UnlockDateLayout = "2006-01-02"

// Capsule represents a time-locked message owned by a single user.
// The owner and unlock instant are set once at burial and never change;
// the only mutation a capsule supports is wholesale deletion.
type Capsule struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Message   string    `json:"message"`
	UnlockAt  time.Time `json:"unlock_at"`
	CreatedAt time.Time `json:"created_at"`
}

// UnlocksOn reports whether the capsule's unlock instant falls on the
// same calendar date as now. Comparison is by date only, so a capsule
// unlocking at any point during now's day qualifies.
func (c *Capsule) UnlocksOn(now time.Time) bool {
	cy, cm, cd := c.UnlockAt.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return cy == ny && cm == nm && cd == nd
}

// IsPending reports whether the capsule is still sealed: its unlock
// instant is strictly later than now.
func (c *Capsule) IsPending(now time.Time) bool {
	return c.UnlockAt.After(now)
}

// IsUnlocked reports whether the capsule's unlock instant has passed.
// The complement of IsPending: exactly one of the two holds for any now.
func (c *Capsule) IsUnlocked(now time.Time) bool {
	return !c.UnlockAt.After(now)
}

// Timeline is the display classification of a capsule set at one instant.
// Today and History are independent predicates and may both contain a
// capsule whose unlock date is now's date with a time-of-day already
// passed; that overlap is part of the display contract and must not be
// deduplicated here.
type Timeline struct {
	Pending []*Capsule `json:"pending"`
	Today   []*Capsule `json:"today"`
	History []*Capsule `json:"history"`
}

// Package clock supplies the current instant in the single reference
// time zone (UTC). Services take a Clock instead of calling time.Now so
// tests can pin the instant.
package clock

import "time"

// Clock yields the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the platform clock, normalized to UTC.
type System struct{}

// Now returns the current UTC instant.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}

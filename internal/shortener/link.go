package shortener

import "time"

// Code represents a short URL code.
type Code string

// Link maps a short code to its target. Links are immutable once stored.
type Link struct {
	Code      Code
	Target    string
	CreatedAt time.Time
}

const (
	// DefaultRecentLimit is used when a history request carries no limit.
	DefaultRecentLimit = 5
	// MaxRecentLimit caps history requests.
	MaxRecentLimit = 100
)

// ClampLimit bounds a caller supplied history limit to [0, MaxRecentLimit].
// Non-positive limits yield zero, meaning an empty listing.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 0
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

package utils

import (
	"math"
	"time"
)

// Payments and subscription expiries are stored as unix seconds; these
// helpers render them for API responses.

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatDate renders the YYYY-MM-DD form used by the recent-payments table.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// DaysRemaining reports whole days until expiry, rounding partial days up.
// Zero or negative when the expiry has already passed.
func DaysRemaining(expiry, now time.Time) int {
	if !expiry.After(now) {
		return 0
	}
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

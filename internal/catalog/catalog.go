// Package catalog holds the static subscription-plan table. Both the public
// plan listing and the activation logic read from this one table, so price
// and duration can never drift between the two.
package catalog

type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration"`
}

// DefaultDurationDays is the documented fallback applied when a subscription
// payment carries a plan id the catalog does not know.
const DefaultDurationDays = 30

var plans = []Plan{
	{ID: "basic", Name: "Basic", Price: 499, DurationDays: 30},
	{ID: "pro", Name: "Pro", Price: 899, DurationDays: 90},
	{ID: "premium", Name: "Premium", Price: 1999, DurationDays: 365},
}

// List returns every plan in display order.
func List() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// Lookup resolves a plan id; ok is false for unknown ids.
func Lookup(planID string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == planID {
			return p, true
		}
	}
	return Plan{}, false
}

// Duration returns the subscription length in days for planID, falling back
// to DefaultDurationDays for unrecognized ids.
func Duration(planID string) int {
	if p, ok := Lookup(planID); ok {
		return p.DurationDays
	}
	return DefaultDurationDays
}

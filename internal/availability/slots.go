package availability

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

// FreeSlots returns start times inside window, step apart, at which a booking
// of length duration overlaps none of busy and does not start before now.
func FreeSlots(window timerange.Range, duration, step time.Duration, busy []timerange.Range, now time.Time) []time.Time {
	if duration <= 0 || step <= 0 || window.Validate() != nil {
		return nil
	}

	busy = timerange.Merge(busy)
	var slots []time.Time
	for t := window.Start; !t.Add(duration).After(window.End); t = t.Add(step) {
		if t.Before(now) {
			continue
		}
		candidate := timerange.Range{Start: t, End: t.Add(duration)}
		if !overlapsAny(candidate, busy) {
			slots = append(slots, t)
		}
	}
	return slots
}

func overlapsAny(r timerange.Range, busy []timerange.Range) bool {
	for _, b := range busy {
		if b.Start.Compare(r.End) >= 0 {
			// busy is sorted by start; nothing later can overlap.
			return false
		}
		if r.Overlaps(b) {
			return true
		}
	}
	return false
}

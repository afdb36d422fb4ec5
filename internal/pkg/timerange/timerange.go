// Package timerange holds the half-open interval arithmetic shared by the
// availability checker and the booking path.
package timerange

import (
	"errors"
	"slices"
	"time"
)

var ErrInvalid = errors.New("start time must be before end time")

// Range is the half-open interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if !r.End.After(r.Start) {
		return ErrInvalid
	}
	return nil
}

// Overlaps reports whether r and o share at least one instant.
// A range ending exactly when the other begins does not overlap it.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

// Contains reports whether t lies inside [Start, End).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Merge sorts ranges by start and coalesces overlapping or touching ones.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	slices.SortFunc(sorted, func(a, b Range) int { return a.Start.Compare(b.Start) })

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(last.End) {
			if r.End.After(last.End) {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

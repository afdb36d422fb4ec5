package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2024, 1, 15, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	base := Range{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{"inside", Range{at(10, 30), at(10, 45)}, true},
		{"covers", Range{at(9, 0), at(12, 0)}, true},
		{"straddles start", Range{at(9, 30), at(10, 15)}, true},
		{"straddles end", Range{at(10, 45), at(11, 30)}, true},
		{"identical", Range{at(10, 0), at(11, 0)}, true},
		{"touches end", Range{at(11, 0), at(11, 30)}, false},
		{"touches start", Range{at(9, 0), at(10, 0)}, false},
		{"disjoint before", Range{at(8, 0), at(9, 0)}, false},
		{"disjoint after", Range{at(12, 0), at(13, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestNewRejectsEmptyAndInverted(t *testing.T) {
	_, err := New(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = New(at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalid)

	r, err := New(at(10, 0), at(10, 30))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, r.Duration())
}

func TestContainsIsHalfOpen(t *testing.T) {
	r := Range{Start: at(10, 0), End: at(11, 0)}
	assert.True(t, r.Contains(at(10, 0)))
	assert.True(t, r.Contains(at(10, 59)))
	assert.False(t, r.Contains(at(11, 0)))
}

func TestMerge(t *testing.T) {
	got := Merge([]Range{
		{at(14, 0), at(16, 0)},
		{at(10, 0), at(12, 0)},
		{at(11, 0), at(12, 30)},
		{at(12, 30), at(13, 0)},
	})

	assert.Equal(t, []Range{
		{at(10, 0), at(13, 0)},
		{at(14, 0), at(16, 0)},
	}, got)
	assert.Nil(t, Merge(nil))
}

package availability

import (
	"testing"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/stretchr/testify/assert"
)

func TestFreeSlots(t *testing.T) {
	window := timerange.Range{Start: at(9, 0), End: at(12, 0)}
	busy := []timerange.Range{
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(10, 30), End: at(10, 45)},
	}

	got := FreeSlots(window, time.Hour, 30*time.Minute, busy, at(0, 0))

	assert.Equal(t, []time.Time{at(9, 0), at(11, 0)}, got)
}

func TestFreeSlotsSkipsPast(t *testing.T) {
	window := timerange.Range{Start: at(9, 0), End: at(11, 0)}

	got := FreeSlots(window, 30*time.Minute, 30*time.Minute, nil, at(9, 10))

	assert.Equal(t, []time.Time{at(9, 30), at(10, 0), at(10, 30)}, got)
}

func TestFreeSlotsLastSlotEndsAtClose(t *testing.T) {
	window := timerange.Range{Start: at(9, 0), End: at(10, 0)}

	got := FreeSlots(window, 45*time.Minute, 15*time.Minute, nil, at(0, 0))

	assert.Equal(t, []time.Time{at(9, 0), at(9, 15)}, got)
}

func TestFreeSlotsRejectsBadInput(t *testing.T) {
	window := timerange.Range{Start: at(9, 0), End: at(10, 0)}

	assert.Nil(t, FreeSlots(window, 0, 15*time.Minute, nil, at(0, 0)))
	assert.Nil(t, FreeSlots(window, time.Hour, 0, nil, at(0, 0)))
	assert.Nil(t, FreeSlots(timerange.Range{Start: at(10, 0), End: at(9, 0)}, time.Hour, time.Hour, nil, at(0, 0)))
}

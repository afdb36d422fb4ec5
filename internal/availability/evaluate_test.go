package availability

import (
	"testing"

	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptyIsAvailable(t *testing.T) {
	res := Evaluate(timerange.Range{Start: at(10, 0), End: at(11, 0)}, nil, nil)

	assert.True(t, res.IsAvailable)
	assert.Empty(t, res.Reason)
	assert.NotNil(t, res.ConflictingAppointments)
	assert.NotNil(t, res.BlockedTimeSlots)
}

func TestEvaluateOverlapRules(t *testing.T) {
	existing := []*appointment.Appointment{appt("a1", "s1", at(10, 0), at(11, 0), appointment.StatusConfirmed)}

	tests := []struct {
		name      string
		start     int
		end       int
		available bool
	}{
		{"inside", 1030, 1045, false},
		{"covering", 900, 1200, false},
		{"straddling start", 930, 1015, false},
		{"touching end", 1100, 1130, true},
		{"touching start", 900, 1000, true},
		{"disjoint", 1300, 1400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := timerange.Range{Start: at(tt.start/100, tt.start%100), End: at(tt.end/100, tt.end%100)}
			res := Evaluate(r, existing, nil)
			assert.Equal(t, tt.available, res.IsAvailable)
			if !tt.available {
				require.Len(t, res.ConflictingAppointments, 1)
				assert.Equal(t, "a1", res.ConflictingAppointments[0].ID)
				assert.Equal(t, ReasonConflict, res.Reason)
			}
		})
	}
}

func TestEvaluateIgnoresInactiveAppointments(t *testing.T) {
	r := timerange.Range{Start: at(10, 0), End: at(11, 0)}
	for _, status := range []appointment.Status{appointment.StatusCancelled, appointment.StatusCompleted} {
		res := Evaluate(r, []*appointment.Appointment{appt("a1", "s1", at(10, 0), at(11, 0), status)}, nil)
		assert.True(t, res.IsAvailable, string(status))
	}

	res := Evaluate(r, []*appointment.Appointment{appt("a2", "s1", at(10, 0), at(11, 0), appointment.StatusPending)}, nil)
	assert.False(t, res.IsAvailable)
}

func TestEvaluateBlockedTime(t *testing.T) {
	r := timerange.Range{Start: at(12, 0), End: at(13, 0)}
	res := Evaluate(r, nil, []*blockedtime.Slot{block("b1", "s1", at(12, 30), at(14, 0))})

	assert.False(t, res.IsAvailable)
	assert.Equal(t, ReasonBlocked, res.Reason)
	require.Len(t, res.BlockedTimeSlots, 1)
	assert.Empty(t, res.ConflictingAppointments)
}

func TestEvaluateReportsBothKinds(t *testing.T) {
	r := timerange.Range{Start: at(10, 0), End: at(12, 0)}
	res := Evaluate(r,
		[]*appointment.Appointment{appt("a1", "s1", at(10, 0), at(11, 0), appointment.StatusConfirmed)},
		[]*blockedtime.Slot{block("b1", "s1", at(11, 0), at(11, 30))},
	)

	assert.False(t, res.IsAvailable)
	assert.Equal(t, ReasonConflict, res.Reason)
	assert.Len(t, res.ConflictingAppointments, 1)
	assert.Len(t, res.BlockedTimeSlots, 1)
}

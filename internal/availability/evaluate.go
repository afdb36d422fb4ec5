package availability

import (
	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

// Evaluate decides availability of r against the given appointments and
// blocks. Only pending and confirmed appointments conflict; intervals are
// half-open, so a slot ending exactly when another starts is free.
func Evaluate(r timerange.Range, appts []*appointment.Appointment, blocks []*blockedtime.Slot) Result {
	res := Result{
		ConflictingAppointments: []*appointment.Appointment{},
		BlockedTimeSlots:        []*blockedtime.Slot{},
	}
	for _, a := range appts {
		if a.Status.Active() && a.Range().Overlaps(r) {
			res.ConflictingAppointments = append(res.ConflictingAppointments, a)
		}
	}
	for _, b := range blocks {
		if b.Range().Overlaps(r) {
			res.BlockedTimeSlots = append(res.BlockedTimeSlots, b)
		}
	}

	switch {
	case len(res.ConflictingAppointments) > 0:
		res.Reason = ReasonConflict
	case len(res.BlockedTimeSlots) > 0:
		res.Reason = ReasonBlocked
	default:
		res.IsAvailable = true
	}
	return res
}

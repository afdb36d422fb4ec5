package availability

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "slot duration and step must be positive")
	ErrStaffNotFound    = apperror.New(http.StatusNotFound, "staff member not found")
	ErrLocationNotFound = apperror.New(http.StatusNotFound, "location not found")
	ErrServiceNotFound  = apperror.New(http.StatusNotFound, "service not found")
)

// Reasons reported with an unavailable Result.
const (
	ReasonStaffNotFound = "staff member not found"
	ReasonStaffInactive = "staff member is inactive"
	ReasonStaffOnLeave  = "staff member is on leave"
	ReasonNotAtLocation = "staff member does not work at this location"
	ReasonLocationShut  = "location is not accepting appointments"
	ReasonConflict      = "staff member has a conflicting appointment"
	ReasonBlocked       = "staff member has blocked this time"
	ReasonUndetermined  = "availability could not be determined"
)

// Query asks whether a staff member is free for [Start, End).
type Query struct {
	StaffID              string
	Start                time.Time
	End                  time.Time
	LocationID           string // Optional: also require the staff member to work here
	ExcludeAppointmentID string // Optional: ignore this appointment (rescheduling)
}

// Result is the answer to a Query. Reason is empty when IsAvailable is true.
type Result struct {
	IsAvailable             bool
	ConflictingAppointments []*appointment.Appointment
	BlockedTimeSlots        []*blockedtime.Slot
	Reason                  string
}

func unavailable(reason string) Result {
	return Result{Reason: reason}
}

// SlotQuery asks for free start times on one calendar day at one location.
type SlotQuery struct {
	StaffID    string
	LocationID string
	Date       time.Time // Only the calendar date is used, in the location's timezone
	Duration   time.Duration
	Step       time.Duration
}

type SlotsResult struct {
	Slots  []Slot
	Reason string
}

type Slot struct {
	Start time.Time
	End   time.Time
}

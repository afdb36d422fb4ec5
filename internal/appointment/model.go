package appointment

import (
	"net/http"
	"slices"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, "appointment not found")
	ErrTimeConflict           = apperror.New(http.StatusConflict, "staff member is already booked for this time")
	ErrBlockedTime            = apperror.New(http.StatusConflict, "staff member has blocked this time")
	ErrInvalidTimeRange       = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast          = apperror.New(http.StatusBadRequest, "cannot book an appointment in the past")
	ErrInvalidStatus          = apperror.New(http.StatusBadRequest, "invalid appointment status")
	ErrInvalidTransition      = apperror.New(http.StatusConflict, "appointment status cannot change this way")
	ErrNotModifiable          = apperror.New(http.StatusConflict, "completed or cancelled appointments cannot be changed")
	ErrStaffNotFound          = apperror.New(http.StatusNotFound, "staff member not found")
	ErrStaffUnavailable       = apperror.New(http.StatusConflict, "staff member is not accepting appointments")
	ErrStaffNotAtLocation     = apperror.New(http.StatusBadRequest, "staff member does not work at this location")
	ErrClientNotFound         = apperror.New(http.StatusNotFound, "client not found")
	ErrServiceNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrServiceInactive        = apperror.New(http.StatusBadRequest, "service is not currently offered")
	ErrLocationNotFound       = apperror.New(http.StatusNotFound, "location not found")
	ErrLocationClosed         = apperror.New(http.StatusConflict, "location is not accepting appointments")
	ErrHomeServiceUnsupported = apperror.New(http.StatusBadRequest, "staff member does not offer home service")
	ErrInvalidReference       = apperror.New(http.StatusBadRequest, "referenced client, staff, service or location does not exist")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the statuses that occupy a staff member's time.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether an appointment in this status blocks the staff member's time.
func (s Status) Active() bool {
	return slices.Contains(ActiveStatuses, s)
}

// CanTransitionTo reports whether next is a legal successor. Completed and
// cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type Appointment struct {
	ID            string
	ClientID      string
	StaffID       string
	ServiceID     string
	LocationID    string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	Notes         string
	IsHomeService bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *Appointment) Range() timerange.Range {
	return timerange.Range{Start: a.StartTime, End: a.EndTime}
}

type Filter struct {
	StaffID    string
	ClientID   string
	LocationID string
	Status     Status
	From       *time.Time // Appointments ending after this instant
	To         *time.Time // Appointments starting before this instant
	Page       int
	PageSize   int
	SortBy     string // start_time (default), created_at
	SortOrder  string
}

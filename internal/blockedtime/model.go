package blockedtime

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "blocked time slot not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStaffNotFound    = apperror.New(http.StatusNotFound, "staff member not found")
)

// Slot is a window in which a staff member cannot take appointments
// (break, training, personal time). It is unrelated to any appointment.
type Slot struct {
	ID        string
	StaffID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedAt time.Time
}

func (s *Slot) Range() timerange.Range {
	return timerange.Range{Start: s.StartTime, End: s.EndTime}
}

type Filter struct {
	StaffID   string
	From      *time.Time // Slots ending after this instant
	To        *time.Time // Slots starting before this instant
	Page      int
	PageSize  int
	SortOrder string
}

package catalog

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "service name is required")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be between 5 and 720 minutes")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrDuplicateName   = apperror.New(http.StatusConflict, "a service with this name already exists")
	ErrInUse           = apperror.New(http.StatusConflict, "service is still referenced by appointments")
)

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 12 * 60
)

// Offering is a bookable salon service (e.g. "Haircut", 45 minutes).
type Offering struct {
	ID              string
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	IsActive        bool
	CreatedAt       time.Time
}

// Duration is the default length of an appointment for this offering.
func (o *Offering) Duration() time.Duration {
	return time.Duration(o.DurationMinutes) * time.Minute
}

// Filter defines parameters for listing offerings.
type Filter struct {
	Name      string
	IsActive  *bool
	Page      int
	PageSize  int
	SortOrder string
}

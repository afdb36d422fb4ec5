package location

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "location not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "location name is required")
	ErrInvalidOpeningHours = apperror.New(http.StatusBadRequest, "opening hours must be HH:MM or HH:MM:SS and start before end")
	ErrInvalidTimezone     = apperror.New(http.StatusBadRequest, "unknown timezone")
	ErrInUse               = apperror.New(http.StatusConflict, "location is still referenced by staff or appointments")
)

// Location is a salon branch.
type Location struct {
	ID                string
	Name              string
	Address           string
	Timezone          string // IANA name, e.g. Europe/Berlin
	OpeningHoursStart string // Format: HH:MM:SS
	OpeningHoursEnd   string // Format: HH:MM:SS
	IsOpen            bool   // Accepting appointments at all
	CreatedAt         time.Time
}

// Filter defines parameters for listing locations.
type Filter struct {
	Name      string
	IsOpen    *bool
	Page      int
	PageSize  int
	SortOrder string
}

// ParseClock parses a wall-clock time of day (HH:MM or HH:MM:SS) into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock value %q", s)
}

// OpeningWindow returns the instants the location is open on the calendar
// day of date, interpreted in the location's timezone.
func (l *Location) OpeningWindow(date time.Time) (timerange.Range, error) {
	tz, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return timerange.Range{}, ErrInvalidTimezone
	}
	open, err := ParseClock(l.OpeningHoursStart)
	if err != nil {
		return timerange.Range{}, ErrInvalidOpeningHours
	}
	closing, err := ParseClock(l.OpeningHoursEnd)
	if err != nil {
		return timerange.Range{}, ErrInvalidOpeningHours
	}

	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, tz)
	r, err := timerange.New(midnight.Add(open), midnight.Add(closing))
	if err != nil {
		return timerange.Range{}, ErrInvalidOpeningHours
	}
	return r, nil
}

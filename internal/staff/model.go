package staff

import (
	"net/http"
	"slices"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "staff member not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "staff name is required")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "status must be active, inactive or on_leave")
	ErrLocationNotFound = apperror.New(http.StatusBadRequest, "one or more locations do not exist")
	ErrDuplicateEmail   = apperror.New(http.StatusConflict, "a staff member with this email already exists")
	ErrInUse            = apperror.New(http.StatusConflict, "staff member still has appointments")
	ErrAvatarNotImage   = apperror.New(http.StatusUnsupportedMediaType, "avatar must be a JPEG or PNG image")
	ErrAvatarTooLarge   = apperror.New(http.StatusRequestEntityTooLarge, "avatar exceeds the size limit")
	ErrNoAvatar         = apperror.New(http.StatusNotFound, "staff member has no avatar")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

// Member is a stylist or other employee who can be booked.
type Member struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	LocationIDs []string
	Status      Status
	HomeService bool // Offers appointments at the client's home
	AvatarPath  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorksAt reports whether the member is assigned to locationID.
func (m *Member) WorksAt(locationID string) bool {
	return slices.Contains(m.LocationIDs, locationID)
}

// Bookable reports whether new appointments may be assigned to the member.
func (m *Member) Bookable() bool {
	return m.Status == StatusActive
}

type Filter struct {
	Name        string
	LocationID  string
	Status      Status
	HomeService *bool
	Page        int
	PageSize    int
	SortOrder   string
}

package client

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "client not found")
	ErrNameRequired   = apperror.New(http.StatusBadRequest, "client name is required")
	ErrDuplicateEmail = apperror.New(http.StatusConflict, "a client with this email already exists")
	ErrInUse          = apperror.New(http.StatusConflict, "client still has appointments")
)

// Client is a salon customer appointments are booked for.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

type Filter struct {
	Keyword   string // Matches name, email or phone
	Page      int
	PageSize  int
	SortOrder string
}

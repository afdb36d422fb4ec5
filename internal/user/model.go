package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "role must be admin, manager or staff")
)

// User is an operator account of the backend, not a salon client.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         auth.Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        auth.Role
	IsActive    *bool // nil means either

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateRequest carries the admin-editable fields; nil leaves a field unchanged.
type UpdateRequest struct {
	DisplayName *string
	Role        *auth.Role
	IsActive    *bool
}

package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
)

type AppointmentResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	StaffID       string    `json:"staff_id"`
	ServiceID     string    `json:"service_id"`
	LocationID    string    `json:"location_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	IsHomeService bool      `json:"is_home_service"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		ClientID:      a.ClientID,
		StaffID:       a.StaffID,
		ServiceID:     a.ServiceID,
		LocationID:    a.LocationID,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Status:        string(a.Status),
		Notes:         a.Notes,
		IsHomeService: a.IsHomeService,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type ListAppointmentsRequest struct {
	request.ListParams
	StaffID    string     `form:"staff_id" binding:"omitempty,uuid"`
	ClientID   string     `form:"client_id" binding:"omitempty,uuid"`
	LocationID string     `form:"location_id" binding:"omitempty,uuid"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy     string     `form:"sort_by" binding:"omitempty,oneof=start_time created_at"`
}

type CreateAppointmentRequest struct {
	ClientID      string     `json:"client_id" binding:"required,uuid"`
	StaffID       string     `json:"staff_id" binding:"required,uuid"`
	ServiceID     string     `json:"service_id" binding:"required,uuid"`
	LocationID    string     `json:"location_id" binding:"required,uuid"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
	Notes         string     `json:"notes" binding:"max=2000"`
	IsHomeService bool       `json:"is_home_service"`
}

type UpdateAppointmentRequest struct {
	StaffID   *string    `json:"staff_id" binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Notes     *string    `json:"notes" binding:"omitempty,max=2000"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

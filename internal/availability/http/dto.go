package http

import (
	"time"

	apptHTTP "github.com/nekogravitycat/salon-booking-backend/internal/appointment/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/availability"
	blockedHTTP "github.com/nekogravitycat/salon-booking-backend/internal/blockedtime/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type CheckRequest struct {
	StaffID              string    `form:"staff_id" binding:"required,uuid"`
	StartTime            time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime              time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	LocationID           string    `form:"location_id" binding:"omitempty,uuid"`
	ExcludeAppointmentID string    `form:"exclude_appointment_id" binding:"omitempty,uuid"`
}

type CheckResponse struct {
	IsAvailable             bool                              `json:"is_available"`
	ConflictingAppointments []apptHTTP.AppointmentResponse    `json:"conflicting_appointments"`
	BlockedTimeSlots        []blockedHTTP.BlockedTimeResponse `json:"blocked_time_slots"`
	Reason                  string                            `json:"reason,omitempty"`
}

func NewCheckResponse(r availability.Result) CheckResponse {
	return CheckResponse{
		IsAvailable:             r.IsAvailable,
		ConflictingAppointments: response.MapItems(r.ConflictingAppointments, apptHTTP.NewAppointmentResponse),
		BlockedTimeSlots:        response.MapItems(r.BlockedTimeSlots, blockedHTTP.NewBlockedTimeResponse),
		Reason:                  r.Reason,
	}
}

type SlotsRequest struct {
	StaffID         string `form:"staff_id" binding:"required,uuid"`
	LocationID      string `form:"location_id" binding:"required,uuid"`
	Date            string `form:"date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int    `form:"duration_minutes" binding:"required,min=5,max=720"`
	StepMinutes     int    `form:"step_minutes" binding:"omitempty,min=5,max=240"`
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type SlotsResponse struct {
	StaffID         string         `json:"staff_id"`
	LocationID      string         `json:"location_id"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"duration_minutes"`
	StepMinutes     int            `json:"step_minutes"`
	Slots           []SlotResponse `json:"slots"`
	Reason          string         `json:"reason,omitempty"`
}

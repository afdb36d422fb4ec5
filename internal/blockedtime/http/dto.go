package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
)

type BlockedTimeResponse struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockedTimeResponse(s *blockedtime.Slot) BlockedTimeResponse {
	return BlockedTimeResponse{
		ID:        s.ID,
		StaffID:   s.StaffID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Reason:    s.Reason,
		CreatedAt: s.CreatedAt,
	}
}

type ListBlockedTimesRequest struct {
	request.ListParams
	StaffID string     `form:"staff_id" binding:"omitempty,uuid"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CreateBlockedTimeRequest struct {
	StaffID   string    `json:"staff_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

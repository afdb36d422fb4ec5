package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

type StaffResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	LocationIDs  []string  `json:"location_ids"`
	Status       string    `json:"status"`
	HomeService  bool      `json:"home_service"`
	AvatarURL    *string   `json:"avatar_url"`
	ThumbnailURL *string   `json:"avatar_thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewStaffResponse(m *staff.Member) StaffResponse {
	resp := StaffResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		LocationIDs: m.LocationIDs,
		Status:      string(m.Status),
		HomeService: m.HomeService,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if resp.LocationIDs == nil {
		resp.LocationIDs = []string{}
	}
	if m.AvatarPath != "" {
		avatar := "/v1/staff/" + m.ID + "/avatar"
		thumb := avatar + "?size=thumbnail"
		resp.AvatarURL = &avatar
		resp.ThumbnailURL = &thumb
	}
	return resp
}

type ListStaffRequest struct {
	request.ListParams
	Name        string `form:"name"`
	LocationID  string `form:"location_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=active inactive on_leave"`
	HomeService *bool  `form:"home_service"`
}

type CreateStaffRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone"`
	LocationIDs []string `json:"location_ids" binding:"dive,uuid"`
	Status      string   `json:"status" binding:"omitempty,oneof=active inactive on_leave"`
	HomeService bool     `json:"home_service"`
}

type UpdateStaffRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Phone       *string   `json:"phone"`
	LocationIDs *[]string `json:"location_ids" binding:"omitempty,dive,uuid"`
	Status      *string   `json:"status" binding:"omitempty,oneof=active inactive on_leave"`
	HomeService *bool     `json:"home_service"`
}

type AvatarQuery struct {
	Size string `form:"size" binding:"omitempty,oneof=full thumbnail"`
}

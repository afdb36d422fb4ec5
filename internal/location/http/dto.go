package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
)

type LocationResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Timezone          string    `json:"timezone"`
	OpeningHoursStart string    `json:"opening_hours_start"`
	OpeningHoursEnd   string    `json:"opening_hours_end"`
	IsOpen            bool      `json:"is_open"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewLocationResponse(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:                l.ID,
		Name:              l.Name,
		Address:           l.Address,
		Timezone:          l.Timezone,
		OpeningHoursStart: l.OpeningHoursStart,
		OpeningHoursEnd:   l.OpeningHoursEnd,
		IsOpen:            l.IsOpen,
		CreatedAt:         l.CreatedAt,
	}
}

type ListLocationsRequest struct {
	request.ListParams
	Name   string `form:"name"`
	IsOpen *bool  `form:"is_open"`
}

type CreateLocationRequest struct {
	Name              string `json:"name" binding:"required"`
	Address           string `json:"address"`
	Timezone          string `json:"timezone"`
	OpeningHoursStart string `json:"opening_hours_start" binding:"required"`
	OpeningHoursEnd   string `json:"opening_hours_end" binding:"required"`
	IsOpen            *bool  `json:"is_open"`
}

type UpdateLocationRequest struct {
	Name              *string `json:"name"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	OpeningHoursStart *string `json:"opening_hours_start"`
	OpeningHoursEnd   *string `json:"opening_hours_end"`
	IsOpen            *bool   `json:"is_open"`
}

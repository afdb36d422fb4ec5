package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/catalog"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
)

type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewServiceResponse(o *catalog.Offering) ServiceResponse {
	return ServiceResponse{
		ID:              o.ID,
		Name:            o.Name,
		Description:     o.Description,
		DurationMinutes: o.DurationMinutes,
		PriceCents:      o.PriceCents,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
	}
}

type ListServicesRequest struct {
	request.ListParams
	Name     string `form:"name"`
	IsActive *bool  `form:"is_active"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	IsActive        *bool  `json:"is_active"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents" binding:"omitempty,min=0"`
	IsActive        *bool   `json:"is_active"`
}

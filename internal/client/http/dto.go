package http

import (
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/client"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewClientResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		Email:     cl.Email,
		Phone:     cl.Phone,
		Notes:     cl.Notes,
		CreatedAt: cl.CreatedAt,
	}
}

type ListClientsRequest struct {
	request.ListParams
	Q string `form:"q"`
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

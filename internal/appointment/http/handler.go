package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

// List returns appointments filtered by staff, client, location, status and time window.
func (h *Handler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	appts, total, err := h.service.List(c.Request.Context(), appointment.Filter{
		StaffID:    req.StaffID,
		ClientID:   req.ClientID,
		LocationID: req.LocationID,
		Status:     appointment.Status(req.Status),
		From:       req.From,
		To:         req.To,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(response.MapItems(appts, NewAppointmentResponse), req.Page, req.PageSize, total))
}

// Create books an appointment. Overlapping bookings for the staff member fail with 409.
func (h *Handler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), appointment.CreateRequest{
		ClientID:      body.ClientID,
		StaffID:       body.StaffID,
		ServiceID:     body.ServiceID,
		LocationID:    body.LocationID,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Notes:         body.Notes,
		IsHomeService: body.IsHomeService,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewAppointmentResponse(a))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid appointment id", err)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid appointment id", err)
		return
	}
	var body UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, appointment.UpdateRequest{
		StaffID:   body.StaffID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Notes:     body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

// ChangeStatus applies a lifecycle transition (confirm, complete, cancel).
func (h *Handler) ChangeStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid appointment id", err)
		return
	}
	var body ChangeStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.ChangeStatus(c.Request.Context(), uri.ID, appointment.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid appointment id", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

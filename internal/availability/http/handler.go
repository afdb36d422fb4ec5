package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/availability"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
)

// Checker is satisfied by *availability.Checker.
type Checker interface {
	Check(ctx context.Context, q availability.Query) (availability.Result, error)
	Slots(ctx context.Context, q availability.SlotQuery) (availability.SlotsResult, error)
}

type Handler struct {
	checker Checker
}

func NewHandler(checker Checker) *Handler {
	return &Handler{checker: checker}
}

func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.checker.Check(c.Request.Context(), availability.Query{
		StaffID:              req.StaffID,
		Start:                req.StartTime,
		End:                  req.EndTime,
		LocationID:           req.LocationID,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCheckResponse(res))
}

func (h *Handler) Slots(c *gin.Context) {
	var req SlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD", err)
		return
	}

	step := time.Duration(req.StepMinutes) * time.Minute
	if step == 0 {
		step = availability.DefaultStep
	}
	res, err := h.checker.Slots(c.Request.Context(), availability.SlotQuery{
		StaffID:    req.StaffID,
		LocationID: req.LocationID,
		Date:       date,
		Duration:   time.Duration(req.DurationMinutes) * time.Minute,
		Step:       step,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	slots := make([]SlotResponse, 0, len(res.Slots))
	for _, s := range res.Slots {
		slots = append(slots, SlotResponse{StartTime: s.Start, EndTime: s.End})
	}
	c.JSON(http.StatusOK, SlotsResponse{
		StaffID:         req.StaffID,
		LocationID:      req.LocationID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		StepMinutes:     int(step / time.Minute),
		Slots:           slots,
		Reason:          res.Reason,
	})
}

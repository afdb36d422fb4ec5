package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/auth"
	"github.com/nekogravitycat/salon-booking-backend/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	query     availability.Query
	slotQuery availability.SlotQuery
	result    availability.Result
	slots     availability.SlotsResult
	err       error
}

func (s *stubChecker) Check(_ context.Context, q availability.Query) (availability.Result, error) {
	s.query = q
	return s.result, s.err
}

func (s *stubChecker) Slots(_ context.Context, q availability.SlotQuery) (availability.SlotsResult, error) {
	s.slotQuery = q
	return s.slots, s.err
}

func newRouter(checker Checker) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(checker), func(c *gin.Context) {
		auth.SetIdentity(c, "user-1", auth.RoleStaff)
		c.Next()
	})
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

const staffID = "6f1b0c1e-0000-4000-8000-000000000002"

func TestCheckUnavailable(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	checker := &stubChecker{result: availability.Result{
		Reason: availability.ReasonConflict,
		ConflictingAppointments: []*appointment.Appointment{
			{ID: "a1", StaffID: staffID, StartTime: start, EndTime: start.Add(time.Hour), Status: appointment.StatusConfirmed},
		},
	}}

	w := get(newRouter(checker), "/v1/availability/check?staff_id="+staffID+"&start_time=2024-01-15T10:30:00Z&end_time=2024-01-15T10:45:00Z")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, availability.ReasonConflict, resp.Reason)
	require.Len(t, resp.ConflictingAppointments, 1)
	assert.Equal(t, "a1", resp.ConflictingAppointments[0].ID)
	assert.Equal(t, "confirmed", resp.ConflictingAppointments[0].Status)
	assert.Contains(t, w.Body.String(), `"blocked_time_slots":[]`)

	assert.Equal(t, staffID, checker.query.StaffID)
	assert.True(t, checker.query.Start.Equal(start.Add(30*time.Minute)))
	assert.True(t, checker.query.End.Equal(start.Add(45*time.Minute)))
}

func TestCheckAvailableOmitsReason(t *testing.T) {
	checker := &stubChecker{result: availability.Result{IsAvailable: true}}

	w := get(newRouter(checker), "/v1/availability/check?staff_id="+staffID+"&start_time=2024-01-15T11:00:00Z&end_time=2024-01-15T11:30:00Z")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_available":true`)
	assert.NotContains(t, w.Body.String(), `"reason"`)
}

func TestCheckBadRequests(t *testing.T) {
	r := newRouter(&stubChecker{err: availability.ErrInvalidTimeRange})

	w := get(r, "/v1/availability/check?staff_id=nope&start_time=2024-01-15T11:00:00Z&end_time=2024-01-15T11:30:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/v1/availability/check?staff_id="+staffID+"&start_time=yesterday&end_time=2024-01-15T11:30:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/v1/availability/check?staff_id="+staffID+"&start_time=2024-01-15T11:30:00Z&end_time=2024-01-15T11:00:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), availability.ErrInvalidTimeRange.Message)
}

func TestSlots(t *testing.T) {
	nine := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	checker := &stubChecker{slots: availability.SlotsResult{Slots: []availability.Slot{{Start: nine, End: nine.Add(time.Hour)}}}}

	w := get(newRouter(checker), "/v1/availability/slots?staff_id="+staffID+"&location_id="+staffID+"&date=2024-01-15&duration_minutes=60")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 15, resp.StepMinutes)
	assert.Equal(t, "2024-01-15", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.True(t, resp.Slots[0].StartTime.Equal(nine))

	assert.Equal(t, time.Hour, checker.slotQuery.Duration)
	assert.Equal(t, availability.DefaultStep, checker.slotQuery.Step)
	assert.Equal(t, 15, checker.slotQuery.Date.Day())
}

func TestSlotsValidation(t *testing.T) {
	r := newRouter(&stubChecker{})

	w := get(r, "/v1/availability/slots?staff_id="+staffID+"&location_id="+staffID+"&date=15/01/2024&duration_minutes=60")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/v1/availability/slots?staff_id="+staffID+"&location_id="+staffID+"&date=2024-01-15")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(newRouter(&stubChecker{err: availability.ErrStaffNotFound}), "/v1/availability/slots?staff_id="+staffID+"&location_id="+staffID+"&date=2024-01-15&duration_minutes=30")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

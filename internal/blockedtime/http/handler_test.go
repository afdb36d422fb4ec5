package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const staffID = "6f1b0c1e-0000-4000-8000-000000000002"

type stubService struct {
	blockedtime.Service
	created   *blockedtime.CreateRequest
	createErr error
	filter    blockedtime.Filter
	deleteErr error
}

func (s *stubService) Create(_ context.Context, req blockedtime.CreateRequest) (*blockedtime.Slot, error) {
	s.created = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &blockedtime.Slot{ID: "b1", StaffID: req.StaffID, StartTime: req.StartTime, EndTime: req.EndTime, Reason: req.Reason}, nil
}

func (s *stubService) List(_ context.Context, filter blockedtime.Filter) ([]*blockedtime.Slot, int, error) {
	s.filter = filter
	return nil, 0, nil
}

func (s *stubService) Delete(_ context.Context, _ string) error {
	return s.deleteErr
}

func newRouter(svc blockedtime.Service) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), func(c *gin.Context) { c.Next() })
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBlockedTime(t *testing.T) {
	svc := &stubService{}
	body := `{"staff_id":"` + staffID + `","start_time":"2024-01-15T12:00:00Z","end_time":"2024-01-15T13:00:00Z","reason":"lunch"}`

	w := do(newRouter(svc), http.MethodPost, "/v1/blocked-times", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), svc.created.StartTime.UTC())

	var resp BlockedTimeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "lunch", resp.Reason)
}

func TestCreateBlockedTimeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"staff_id":`},
		{"staff id not a uuid", `{"staff_id":"bea","start_time":"2024-01-15T12:00:00Z","end_time":"2024-01-15T13:00:00Z"}`},
		{"missing end", `{"staff_id":"` + staffID + `","start_time":"2024-01-15T12:00:00Z"}`},
		{"reason too long", `{"staff_id":"` + staffID + `","start_time":"2024-01-15T12:00:00Z","end_time":"2024-01-15T13:00:00Z","reason":"` + strings.Repeat("x", 501) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			w := do(newRouter(svc), http.MethodPost, "/v1/blocked-times", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, svc.created, "service must not be reached")
		})
	}
}

func TestCreateBlockedTimeServiceErrors(t *testing.T) {
	body := `{"staff_id":"` + staffID + `","start_time":"2024-01-15T13:00:00Z","end_time":"2024-01-15T12:00:00Z"}`

	w := do(newRouter(&stubService{createErr: blockedtime.ErrInvalidTimeRange}), http.MethodPost, "/v1/blocked-times", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), blockedtime.ErrInvalidTimeRange.Message)

	w = do(newRouter(&stubService{createErr: blockedtime.ErrStaffNotFound}), http.MethodPost, "/v1/blocked-times", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBlockedTimesBindsFilter(t *testing.T) {
	svc := &stubService{}
	w := do(newRouter(svc), http.MethodGet, "/v1/blocked-times?staff_id="+staffID+"&from=2024-01-15T00:00:00Z&sort_order=desc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, staffID, svc.filter.StaffID)
	require.NotNil(t, svc.filter.From)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), svc.filter.From.UTC())
	assert.Nil(t, svc.filter.To)
	assert.Equal(t, "DESC", svc.filter.SortOrder)
	assert.Equal(t, 1, svc.filter.Page)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0}`, w.Body.String())

	w = do(newRouter(svc), http.MethodGet, "/v1/blocked-times?staff_id=bea", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBlockedTime(t *testing.T) {
	w := do(newRouter(&stubService{}), http.MethodDelete, "/v1/blocked-times/"+staffID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(newRouter(&stubService{deleteErr: blockedtime.ErrNotFound}), http.MethodDelete, "/v1/blocked-times/"+staffID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(newRouter(&stubService{}), http.MethodDelete, "/v1/blocked-times/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package availability

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

var errBackend = errors.New("connection reset by peer")

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type staffStub struct {
	members map[string]*staff.Member
	err     error
	calls   atomic.Int32
}

func (s *staffStub) GetByID(_ context.Context, id string) (*staff.Member, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.members[id]
	if !ok {
		return nil, staff.ErrNotFound
	}
	return m, nil
}

// apptStub does no filtering of its own beyond staff id, so the checker's
// own overlap and status rules are what the tests observe.
type apptStub struct {
	items []*appointment.Appointment
	err   error
}

func (s *apptStub) Overlapping(_ context.Context, staffID string, _ timerange.Range, _ string) ([]*appointment.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*appointment.Appointment
	for _, a := range s.items {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out, nil
}

type blockStub struct {
	items []*blockedtime.Slot
	err   error
}

func (s *blockStub) Overlapping(_ context.Context, staffID string, _ timerange.Range) ([]*blockedtime.Slot, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*blockedtime.Slot
	for _, b := range s.items {
		if b.StaffID == staffID {
			out = append(out, b)
		}
	}
	return out, nil
}

type locationStub map[string]*location.Location

func (s locationStub) GetByID(_ context.Context, id string) (*location.Location, error) {
	l, ok := s[id]
	if !ok {
		return nil, location.ErrNotFound
	}
	return l, nil
}

func appt(id, staffID string, start, end time.Time, status appointment.Status) *appointment.Appointment {
	return &appointment.Appointment{ID: id, StaffID: staffID, StartTime: start, EndTime: end, Status: status}
}

func block(id, staffID string, start, end time.Time) *blockedtime.Slot {
	return &blockedtime.Slot{ID: id, StaffID: staffID, StartTime: start, EndTime: end}
}

package appointment

import (
	"context"
	"fmt"
	"sync"

	"github.com/nekogravitycat/salon-booking-backend/internal/catalog"
	"github.com/nekogravitycat/salon-booking-backend/internal/client"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

// memRepo mirrors the Postgres repository: one lock plays the per-staff advisory lock.
type memRepo struct {
	mu     sync.Mutex
	items  map[string]*Appointment
	blocks []timerange.Range
	seq    int
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]*Appointment{}}
}

func (m *memRepo) ensureFree(a *Appointment, excludeID string) error {
	for _, other := range m.items {
		if other.ID == excludeID || other.StaffID != a.StaffID || !other.Status.Active() {
			continue
		}
		if other.Range().Overlaps(a.Range()) {
			return ErrTimeConflict
		}
	}
	for _, b := range m.blocks {
		if b.Overlaps(a.Range()) {
			return ErrBlockedTime
		}
	}
	return nil
}

func (m *memRepo) CreateExclusive(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFree(a, ""); err != nil {
		return err
	}
	m.seq++
	a.ID = fmt.Sprintf("appt-%d", m.seq)
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) List(context.Context, Filter) ([]*Appointment, int, error) {
	return nil, 0, nil
}

func (m *memRepo) Update(_ context.Context, a *Appointment, exclusive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[a.ID]
	if !ok {
		return ErrNotFound
	}
	if !stored.Status.Active() {
		return ErrNotModifiable
	}
	if exclusive {
		if err := m.ensureFree(a, a.ID); err != nil {
			return err
		}
	}
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, from, to Status) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if a.Status != from {
		return nil, ErrInvalidTransition
	}
	a.Status = to
	cp := *a
	return &cp, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) Overlapping(_ context.Context, staffID string, r timerange.Range, excludeID string) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Appointment
	for _, a := range m.items {
		if a.ID != excludeID && a.StaffID == staffID && a.Status.Active() && a.Range().Overlaps(r) {
			out = append(out, a)
		}
	}
	return out, nil
}

type staffStub map[string]*staff.Member

func (s staffStub) GetByID(_ context.Context, id string) (*staff.Member, error) {
	if m, ok := s[id]; ok {
		return m, nil
	}
	return nil, staff.ErrNotFound
}

type clientStub map[string]*client.Client

func (s clientStub) GetByID(_ context.Context, id string) (*client.Client, error) {
	if c, ok := s[id]; ok {
		return c, nil
	}
	return nil, client.ErrNotFound
}

type offeringStub map[string]*catalog.Offering

func (s offeringStub) GetByID(_ context.Context, id string) (*catalog.Offering, error) {
	if o, ok := s[id]; ok {
		return o, nil
	}
	return nil, catalog.ErrNotFound
}

type locationStub map[string]*location.Location

func (s locationStub) GetByID(_ context.Context, id string) (*location.Location, error) {
	if l, ok := s[id]; ok {
		return l, nil
	}
	return nil, location.ErrNotFound
}

type recorder struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (r *recorder) Emit(_ context.Context, e notifier.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []notifier.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// cancelAfterRead cancels the appointment in the store right after handing
// out a copy, as a concurrent ChangeStatus would.
type cancelAfterRead struct {
	*memRepo
}

func (r cancelAfterRead) GetByID(ctx context.Context, id string) (*Appointment, error) {
	a, err := r.memRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.items[id].Status = StatusCancelled
	r.mu.Unlock()
	return a, nil
}

package blockedtime

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

// StaffGetter is the slice of staff.Service this package needs.
type StaffGetter interface {
	GetByID(ctx context.Context, id string) (*staff.Member, error)
}

type CreateRequest struct {
	StaffID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Slot, error)
	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Delete(ctx context.Context, id string) error
	Overlapping(ctx context.Context, staffID string, r timerange.Range) ([]*Slot, error)
}

type service struct {
	repo   Repository
	staff  StaffGetter
	events notifier.Publisher
}

func NewService(repo Repository, staffGetter StaffGetter, events notifier.Publisher) Service {
	return &service{repo: repo, staff: staffGetter, events: events}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Slot, error) {
	if _, err := timerange.New(req.StartTime, req.EndTime); err != nil {
		return nil, ErrInvalidTimeRange
	}
	if _, err := s.staff.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	slot := &Slot{
		StaffID:   req.StaffID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Reason:    strings.TrimSpace(req.Reason),
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.emit(ctx, notifier.BlockedTimeCreated, slot)
	return slot, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, notifier.BlockedTimeDeleted, slot)
	return nil
}

func (s *service) Overlapping(ctx context.Context, staffID string, r timerange.Range) ([]*Slot, error) {
	return s.repo.Overlapping(ctx, staffID, r)
}

func (s *service) emit(ctx context.Context, t notifier.EventType, slot *Slot) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, notifier.Event{
		Type:      t,
		SubjectID: slot.ID,
		StaffID:   slot.StaffID,
		Payload: map[string]any{
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
		},
	})
}

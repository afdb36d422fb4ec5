package appointment

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/catalog"
	"github.com/nekogravitycat/salon-booking-backend/internal/client"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

type StaffGetter interface {
	GetByID(ctx context.Context, id string) (*staff.Member, error)
}

type ClientGetter interface {
	GetByID(ctx context.Context, id string) (*client.Client, error)
}

type OfferingGetter interface {
	GetByID(ctx context.Context, id string) (*catalog.Offering, error)
}

type LocationGetter interface {
	GetByID(ctx context.Context, id string) (*location.Location, error)
}

type CreateRequest struct {
	ClientID      string
	StaffID       string
	ServiceID     string
	LocationID    string
	StartTime     time.Time
	EndTime       *time.Time // Defaults to StartTime + service duration
	Notes         string
	IsHomeService bool
}

type UpdateRequest struct {
	StaffID   *string
	StartTime *time.Time
	EndTime   *time.Time
	Notes     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Appointment, error)
	ChangeStatus(ctx context.Context, id string, next Status) (*Appointment, error)
	Delete(ctx context.Context, id string) error
	Overlapping(ctx context.Context, staffID string, r timerange.Range, excludeID string) ([]*Appointment, error)
}

// Deps groups the lookups the service validates references against.
type Deps struct {
	Staff     StaffGetter
	Clients   ClientGetter
	Offerings OfferingGetter
	Locations LocationGetter
	Events    notifier.Publisher
}

type service struct {
	repo Repository
	deps Deps
	now  func() time.Time
}

func NewService(repo Repository, deps Deps) Service {
	return &service{repo: repo, deps: deps, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	offering, err := s.deps.Offerings.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, translate(err, catalog.ErrNotFound, ErrServiceNotFound)
	}
	if !offering.IsActive {
		return nil, ErrServiceInactive
	}

	end := req.StartTime.Add(offering.Duration())
	if req.EndTime != nil {
		end = *req.EndTime
	}
	rng, err := timerange.New(req.StartTime.UTC(), end.UTC())
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	// Strict check: StartTime cannot be in the past
	if rng.Start.Before(s.now().UTC()) {
		return nil, ErrStartTimePast
	}

	member, err := s.deps.Staff.GetByID(ctx, req.StaffID)
	if err != nil {
		return nil, translate(err, staff.ErrNotFound, ErrStaffNotFound)
	}
	if err := s.checkAssignment(ctx, member, req.LocationID); err != nil {
		return nil, err
	}
	if req.IsHomeService && !member.HomeService {
		return nil, ErrHomeServiceUnsupported
	}

	if _, err := s.deps.Clients.GetByID(ctx, req.ClientID); err != nil {
		return nil, translate(err, client.ErrNotFound, ErrClientNotFound)
	}

	a := &Appointment{
		ClientID:      req.ClientID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		LocationID:    req.LocationID,
		StartTime:     rng.Start,
		EndTime:       rng.End,
		Status:        StatusPending,
		Notes:         strings.TrimSpace(req.Notes),
		IsHomeService: req.IsHomeService,
	}
	if err := s.repo.CreateExclusive(ctx, a); err != nil {
		return nil, err
	}

	s.emit(ctx, notifier.AppointmentCreated, a, nil)
	return a, nil
}

// checkAssignment verifies member can take new work at locationID.
func (s *service) checkAssignment(ctx context.Context, member *staff.Member, locationID string) error {
	if !member.Bookable() {
		return ErrStaffUnavailable
	}
	loc, err := s.deps.Locations.GetByID(ctx, locationID)
	if err != nil {
		return translate(err, location.ErrNotFound, ErrLocationNotFound)
	}
	if !loc.IsOpen {
		return ErrLocationClosed
	}
	if !member.WorksAt(loc.ID) {
		return ErrStaffNotAtLocation
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, filter)
}

// Update reschedules, reassigns or annotates an active appointment. Any change
// to staff or time goes through the same conflict check as Create.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.Active() {
		return nil, ErrNotModifiable
	}

	before := *a
	if req.StaffID != nil {
		a.StaffID = *req.StaffID
	}
	if req.StartTime != nil {
		// Moving the start keeps the duration unless an end is given too.
		duration := a.EndTime.Sub(a.StartTime)
		a.StartTime = req.StartTime.UTC()
		a.EndTime = a.StartTime.Add(duration)
	}
	if req.EndTime != nil {
		a.EndTime = req.EndTime.UTC()
	}
	if req.Notes != nil {
		a.Notes = strings.TrimSpace(*req.Notes)
	}

	rescheduled := a.StaffID != before.StaffID ||
		!a.StartTime.Equal(before.StartTime) ||
		!a.EndTime.Equal(before.EndTime)

	if rescheduled {
		if err := a.Range().Validate(); err != nil {
			return nil, ErrInvalidTimeRange
		}
		if a.StartTime.Before(s.now().UTC()) {
			return nil, ErrStartTimePast
		}
		// A new time needs the same staff checks as a new booking.
		member, err := s.deps.Staff.GetByID(ctx, a.StaffID)
		if err != nil {
			return nil, translate(err, staff.ErrNotFound, ErrStaffNotFound)
		}
		if err := s.checkAssignment(ctx, member, a.LocationID); err != nil {
			return nil, err
		}
		if a.IsHomeService && !member.HomeService {
			return nil, ErrHomeServiceUnsupported
		}
	}

	if err := s.repo.Update(ctx, a, rescheduled); err != nil {
		return nil, err
	}

	var payload map[string]any
	if rescheduled {
		payload = map[string]any{
			"previous_staff_id":   before.StaffID,
			"previous_start_time": before.StartTime,
			"previous_end_time":   before.EndTime,
		}
	}
	s.emit(ctx, notifier.AppointmentUpdated, a, payload)
	// A reassignment also frees the previous staff member's slot.
	if a.StaffID != before.StaffID {
		s.emit(ctx, notifier.AppointmentUpdated, &before, map[string]any{"reassigned_to": a.StaffID})
	}
	return a, nil
}

func (s *service) ChangeStatus(ctx context.Context, id string, next Status) (*Appointment, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	a, err := s.repo.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, notifier.AppointmentStatusChanged, a, map[string]any{
		"from": current.Status,
		"to":   a.Status,
	})
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, notifier.AppointmentDeleted, a, nil)
	return nil
}

func (s *service) Overlapping(ctx context.Context, staffID string, r timerange.Range, excludeID string) ([]*Appointment, error) {
	return s.repo.Overlapping(ctx, staffID, r, excludeID)
}

func (s *service) emit(ctx context.Context, t notifier.EventType, a *Appointment, extra map[string]any) {
	if s.deps.Events == nil {
		return
	}
	payload := map[string]any{
		"status":     a.Status,
		"start_time": a.StartTime,
		"end_time":   a.EndTime,
		"client_id":  a.ClientID,
	}
	maps.Copy(payload, extra)
	s.deps.Events.Emit(ctx, notifier.Event{
		Type:       t,
		SubjectID:  a.ID,
		StaffID:    a.StaffID,
		LocationID: a.LocationID,
		Payload:    payload,
	})
}

// translate swaps a dependency's not-found sentinel for this package's own.
func translate(err, from, to error) error {
	if errors.Is(err, from) {
		return to
	}
	return err
}

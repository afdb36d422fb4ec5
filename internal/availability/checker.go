package availability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nekogravitycat/salon-booking-backend/internal/appointment"
	"github.com/nekogravitycat/salon-booking-backend/internal/blockedtime"
	"github.com/nekogravitycat/salon-booking-backend/internal/location"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultStep = 15 * time.Minute

type AppointmentSource interface {
	Overlapping(ctx context.Context, staffID string, r timerange.Range, excludeID string) ([]*appointment.Appointment, error)
}

type BlockSource interface {
	Overlapping(ctx context.Context, staffID string, r timerange.Range) ([]*blockedtime.Slot, error)
}

type LocationGetter interface {
	GetByID(ctx context.Context, id string) (*location.Location, error)
}

// Checker answers availability questions for staff members. It is read-only
// and safe for concurrent use.
type Checker struct {
	staff        StaffGetter
	appointments AppointmentSource
	blocks       BlockSource
	locations    LocationGetter
	logger       *slog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

func NewChecker(staffGetter StaffGetter, appts AppointmentSource, blocks BlockSource, locations LocationGetter, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		staff:        staffGetter,
		appointments: appts,
		blocks:       blocks,
		locations:    locations,
		logger:       logger,
		tracer:       otel.Tracer("github.com/nekogravitycat/salon-booking-backend/internal/availability"),
		now:          time.Now,
	}
}

// Check reports whether q.StaffID is free for [q.Start, q.End).
//
// The only error returned is ErrInvalidTimeRange. Every other failure,
// including a failed lookup, yields an unavailable Result so a caller can
// never book on incomplete information.
func (c *Checker) Check(ctx context.Context, q Query) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "availability.Check", trace.WithAttributes(
		attribute.String("staff.id", q.StaffID),
		attribute.String("location.id", q.LocationID),
	))
	defer span.End()

	rng, err := timerange.New(q.Start, q.End)
	if err != nil {
		span.SetStatus(codes.Error, "invalid time range")
		return Result{}, ErrInvalidTimeRange
	}

	res := c.check(ctx, q, rng)
	span.SetAttributes(
		attribute.Bool("availability.available", res.IsAvailable),
		attribute.Int("availability.conflicts", len(res.ConflictingAppointments)),
		attribute.Int("availability.blocks", len(res.BlockedTimeSlots)),
	)
	return res, nil
}

func (c *Checker) check(ctx context.Context, q Query, rng timerange.Range) Result {
	member, err := c.staff.GetByID(ctx, q.StaffID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return unavailable(ReasonStaffNotFound)
		}
		return c.undetermined(ctx, "load staff member", err, q)
	}
	if reason := staffGate(member, q.LocationID); reason != "" {
		return unavailable(reason)
	}

	appts, err := c.appointments.Overlapping(ctx, q.StaffID, rng, q.ExcludeAppointmentID)
	if err != nil {
		return c.undetermined(ctx, "load appointments", err, q)
	}
	blocks, err := c.blocks.Overlapping(ctx, q.StaffID, rng)
	if err != nil {
		return c.undetermined(ctx, "load blocked time", err, q)
	}

	// The sources already filter by staff and window. Evaluate applies the
	// status and overlap rules itself so the answer never depends on that.
	if q.ExcludeAppointmentID != "" {
		appts = withoutAppointment(appts, q.ExcludeAppointmentID)
	}
	return Evaluate(rng, appts, blocks)
}

func staffGate(m *staff.Member, locationID string) string {
	switch m.Status {
	case staff.StatusInactive:
		return ReasonStaffInactive
	case staff.StatusOnLeave:
		return ReasonStaffOnLeave
	}
	if locationID != "" && !m.WorksAt(locationID) {
		return ReasonNotAtLocation
	}
	return ""
}

func (c *Checker) undetermined(ctx context.Context, step string, err error, q Query) Result {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	c.logger.ErrorContext(ctx, "availability check failed",
		"step", step,
		"staff_id", q.StaffID,
		"start", q.Start,
		"end", q.End,
		"err", err,
	)
	return unavailable(ReasonUndetermined)
}

func withoutAppointment(appts []*appointment.Appointment, id string) []*appointment.Appointment {
	out := appts[:0:0]
	for _, a := range appts {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// Slots lists the start times on q.Date at which q.StaffID could take a
// booking of q.Duration at q.LocationID. Starts are q.Step apart from the
// opening time and never in the past.
func (c *Checker) Slots(ctx context.Context, q SlotQuery) (SlotsResult, error) {
	ctx, span := c.tracer.Start(ctx, "availability.Slots", trace.WithAttributes(
		attribute.String("staff.id", q.StaffID),
		attribute.String("location.id", q.LocationID),
	))
	defer span.End()

	if q.Step == 0 {
		q.Step = DefaultStep
	}
	if q.Duration <= 0 || q.Step < 0 {
		return SlotsResult{}, ErrInvalidDuration
	}

	member, err := c.staff.GetByID(ctx, q.StaffID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return SlotsResult{}, ErrStaffNotFound
		}
		return c.noSlots(ctx, "load staff member", err, q), nil
	}
	loc, err := c.locations.GetByID(ctx, q.LocationID)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return SlotsResult{}, ErrLocationNotFound
		}
		return c.noSlots(ctx, "load location", err, q), nil
	}

	if reason := staffGate(member, q.LocationID); reason != "" {
		return SlotsResult{Slots: []Slot{}, Reason: reason}, nil
	}
	if !loc.IsOpen {
		return SlotsResult{Slots: []Slot{}, Reason: ReasonLocationShut}, nil
	}

	window, err := loc.OpeningWindow(q.Date)
	if err != nil {
		return c.noSlots(ctx, "resolve opening hours", err, q), nil
	}

	appts, err := c.appointments.Overlapping(ctx, q.StaffID, window, "")
	if err != nil {
		return c.noSlots(ctx, "load appointments", err, q), nil
	}
	blocks, err := c.blocks.Overlapping(ctx, q.StaffID, window)
	if err != nil {
		return c.noSlots(ctx, "load blocked time", err, q), nil
	}

	busy := make([]timerange.Range, 0, len(appts)+len(blocks))
	for _, a := range appts {
		if a.Status.Active() {
			busy = append(busy, a.Range())
		}
	}
	for _, b := range blocks {
		busy = append(busy, b.Range())
	}

	starts := FreeSlots(window, q.Duration, q.Step, busy, c.now())
	slots := make([]Slot, 0, len(starts))
	for _, t := range starts {
		slots = append(slots, Slot{Start: t, End: t.Add(q.Duration)})
	}
	span.SetAttributes(attribute.Int("availability.slots", len(slots)))
	return SlotsResult{Slots: slots}, nil
}

func (c *Checker) noSlots(ctx context.Context, step string, err error, q SlotQuery) SlotsResult {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	c.logger.ErrorContext(ctx, "slot listing failed",
		"step", step,
		"staff_id", q.StaffID,
		"location_id", q.LocationID,
		"err", err,
	)
	return SlotsResult{Slots: []Slot{}, Reason: ReasonUndetermined}
}

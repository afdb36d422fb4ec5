package appointment

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nekogravitycat/salon-booking-backend/internal/db"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a Postgres database with migrations/0001_init.sql
// applied. They are skipped unless TEST_DB_DSN is set (directly or in .env).

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	poolOnce.Do(func() {
		pool, poolErr = db.NewPool(context.Background(), dsn)
	})
	require.NoError(t, poolErr)
	return pool
}

type seed struct {
	staffID    string
	clientID   string
	serviceID  string
	locationID string
}

func seedSchedule(t *testing.T, p *pgxpool.Pool) seed {
	t.Helper()
	ctx := context.Background()

	_, err := p.Exec(ctx, `TRUNCATE TABLE public.appointments, public.blocked_time_slots,
		public.staff_locations, public.staff_members, public.clients,
		public.services, public.locations CASCADE`)
	require.NoError(t, err)

	var s seed
	require.NoError(t, p.QueryRow(ctx,
		`INSERT INTO public.locations (name, opening_hours_start, opening_hours_end)
		 VALUES ('Downtown', '09:00', '18:00') RETURNING id`).Scan(&s.locationID))
	require.NoError(t, p.QueryRow(ctx,
		`INSERT INTO public.services (name, duration_minutes, price_cents)
		 VALUES ('Haircut', 60, 3500) RETURNING id`).Scan(&s.serviceID))
	require.NoError(t, p.QueryRow(ctx,
		`INSERT INTO public.clients (name) VALUES ('Ana') RETURNING id`).Scan(&s.clientID))
	require.NoError(t, p.QueryRow(ctx,
		`INSERT INTO public.staff_members (name) VALUES ('Bea') RETURNING id`).Scan(&s.staffID))
	_, err = p.Exec(ctx,
		`INSERT INTO public.staff_locations (staff_id, location_id) VALUES ($1, $2)`, s.staffID, s.locationID)
	require.NoError(t, err)
	return s
}

func (s seed) appointment(start, end time.Time) *Appointment {
	return &Appointment{
		ClientID:   s.clientID,
		StaffID:    s.staffID,
		ServiceID:  s.serviceID,
		LocationID: s.locationID,
		StartTime:  start,
		EndTime:    end,
		Status:     StatusPending,
	}
}

func TestPgxConcurrentBookingsSerialize(t *testing.T) {
	p := testPool(t)
	s := seedSchedule(t, p)
	repo := NewPgxRepository(p)
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.CreateExclusive(ctx, s.appointment(at(10, 0), at(11, 0)))
		}()
	}
	wg.Wait()

	var booked, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case assert.ErrorIs(t, err, ErrTimeConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, 1, conflicts)

	active, err := repo.Overlapping(ctx, s.staffID, timerange.Range{Start: at(9, 0), End: at(12, 0)}, "")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestPgxTouchingSlotsAndBlocks(t *testing.T) {
	p := testPool(t)
	s := seedSchedule(t, p)
	repo := NewPgxRepository(p)
	ctx := context.Background()

	require.NoError(t, repo.CreateExclusive(ctx, s.appointment(at(10, 0), at(11, 0))))
	require.NoError(t, repo.CreateExclusive(ctx, s.appointment(at(11, 0), at(12, 0))), "end == next start is not an overlap")
	assert.ErrorIs(t, repo.CreateExclusive(ctx, s.appointment(at(11, 30), at(12, 30))), ErrTimeConflict)

	_, err := p.Exec(ctx,
		`INSERT INTO public.blocked_time_slots (staff_id, start_time, end_time, reason) VALUES ($1, $2, $3, 'lunch')`,
		s.staffID, at(13, 0), at(14, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.CreateExclusive(ctx, s.appointment(at(13, 30), at(14, 30))), ErrBlockedTime)
	require.NoError(t, repo.CreateExclusive(ctx, s.appointment(at(14, 0), at(15, 0))))
}

func TestPgxExclusionConstraintBacksTheLock(t *testing.T) {
	p := testPool(t)
	s := seedSchedule(t, p)
	repo := NewPgxRepository(p)
	ctx := context.Background()

	require.NoError(t, repo.CreateExclusive(ctx, s.appointment(at(10, 0), at(11, 0))))

	// A writer that skips the advisory lock still cannot double-book.
	_, err := p.Exec(ctx,
		`INSERT INTO public.appointments (client_id, staff_id, service_id, location_id, start_time, end_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'confirmed')`,
		s.clientID, s.staffID, s.serviceID, s.locationID, at(10, 30), at(11, 30))
	require.Error(t, err)
	assert.True(t, db.HasCode(err, pgerrcode.ExclusionViolation))
	assert.ErrorIs(t, mapWriteError(err, "create"), ErrTimeConflict)

	// Cancelled rows are outside the constraint.
	_, err = p.Exec(ctx,
		`INSERT INTO public.appointments (client_id, staff_id, service_id, location_id, start_time, end_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'cancelled')`,
		s.clientID, s.staffID, s.serviceID, s.locationID, at(10, 30), at(11, 30))
	assert.NoError(t, err)
}

func TestPgxUpdateRechecksAndRefusesInactive(t *testing.T) {
	p := testPool(t)
	s := seedSchedule(t, p)
	repo := NewPgxRepository(p)
	ctx := context.Background()

	first := s.appointment(at(10, 0), at(11, 0))
	require.NoError(t, repo.CreateExclusive(ctx, first))
	second := s.appointment(at(12, 0), at(13, 0))
	require.NoError(t, repo.CreateExclusive(ctx, second))

	// Moving within its own old slot is fine.
	first.StartTime, first.EndTime = at(10, 30), at(11, 30)
	require.NoError(t, repo.Update(ctx, first, true))

	second.StartTime, second.EndTime = at(11, 0), at(12, 0)
	assert.ErrorIs(t, repo.Update(ctx, second, true), ErrTimeConflict)

	_, err := repo.UpdateStatus(ctx, second.ID, StatusPending, StatusCancelled)
	require.NoError(t, err)
	second.StartTime, second.EndTime = at(15, 0), at(16, 0)
	assert.ErrorIs(t, repo.Update(ctx, second, true), ErrNotModifiable)

	ghost := s.appointment(at(16, 0), at(17, 0))
	ghost.ID = "00000000-0000-4000-8000-000000000000"
	assert.ErrorIs(t, repo.Update(ctx, ghost, false), ErrNotFound)
}

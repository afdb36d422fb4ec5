package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/salon-booking-backend/internal/db"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

type Repository interface {
	// CreateExclusive inserts a while holding the staff member's schedule lock,
	// failing with ErrTimeConflict or ErrBlockedTime when the slot is taken.
	CreateExclusive(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	// Update persists mutable fields of an active appointment, failing with
	// ErrNotModifiable once it is completed or cancelled. With exclusive set it
	// re-checks the schedule (ignoring a itself) under the same lock as CreateExclusive.
	Update(ctx context.Context, a *Appointment, exclusive bool) error
	// UpdateStatus moves id from one status to another. It fails with
	// ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Appointment, error)
	Delete(ctx context.Context, id string) error
	// Overlapping returns the staff member's active appointments intersecting r.
	Overlapping(ctx context.Context, staffID string, r timerange.Range, excludeID string) ([]*Appointment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var appointmentColumns = []string{
	"id", "client_id", "staff_id", "service_id", "location_id",
	"start_time", "end_time", "status", "notes", "is_home_service",
	"created_at", "updated_at",
}

func scanAppointment(row pgx.Row, extra ...any) (*Appointment, error) {
	var a Appointment
	dest := append([]any{
		&a.ID, &a.ClientID, &a.StaffID, &a.ServiceID, &a.LocationID,
		&a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.IsHomeService,
		&a.CreatedAt, &a.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

// activeStatuses returns ActiveStatuses as plain strings for squirrel.Eq.
func activeStatuses() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// ensureFree fails when r collides with an active appointment or a blocked
// slot of staffID. The caller must hold the staff lock.
func ensureFree(ctx context.Context, tx pgx.Tx, staffID string, r timerange.Range, excludeID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Overlap logic: (NewStart < ExistingEnd) AND (NewEnd > ExistingStart)
	apptSub := psql.Select("1").
		From("public.appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.Lt{"start_time": r.End}).
		Where(squirrel.Gt{"end_time": r.Start})
	if excludeID != "" {
		apptSub = apptSub.Where(squirrel.NotEq{"id": excludeID})
	}
	blockSub := psql.Select("1").
		From("public.blocked_time_slots").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_time": r.End}).
		Where(squirrel.Gt{"end_time": r.Start})

	apptSQL, apptArgs, err := apptSub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build appointment overlap query failed: %w", err)
	}
	var booked bool
	if err := tx.QueryRow(ctx, apptSQL, apptArgs...).Scan(&booked); err != nil {
		return fmt.Errorf("check appointment overlap failed: %w", err)
	}
	if booked {
		return ErrTimeConflict
	}

	blockSQL, blockArgs, err := blockSub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build blocked time overlap query failed: %w", err)
	}
	var blocked bool
	if err := tx.QueryRow(ctx, blockSQL, blockArgs...).Scan(&blocked); err != nil {
		return fmt.Errorf("check blocked time overlap failed: %w", err)
	}
	if blocked {
		return ErrBlockedTime
	}
	return nil
}

func mapWriteError(err error, op string) error {
	switch {
	case db.HasCode(err, pgerrcode.ExclusionViolation):
		return ErrTimeConflict
	case db.HasCode(err, pgerrcode.ForeignKeyViolation):
		return ErrInvalidReference
	}
	return fmt.Errorf("%s appointment failed: %w", op, err)
}

func (r *pgxRepository) CreateExclusive(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns("client_id", "staff_id", "service_id", "location_id", "start_time", "end_time", "status", "notes", "is_home_service").
		Values(a.ClientID, a.StaffID, a.ServiceID, a.LocationID, a.StartTime, a.EndTime, a.Status, a.Notes, a.IsHomeService).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := db.LockStaff(ctx, tx, a.StaffID); err != nil {
			return err
		}
		if err := ensureFree(ctx, tx, a.StaffID, a.Range(), ""); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return mapWriteError(err, "create")
		}
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(appointmentColumns...).
		From("public.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	a, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(appointmentColumns, "count(*) OVER() AS total_count")...).
		From("public.appointments")

	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"staff_id": filter.StaffID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"client_id": filter.ClientID})
	}
	if filter.LocationID != "" {
		query = query.Where(squirrel.Eq{"location_id": filter.LocationID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": *filter.To})
	}

	orderBy := "start_time"
	if filter.SortBy == "created_at" {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var appts []*Appointment
	var total int
	for rows.Next() {
		a, err := scanAppointment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate appointments failed: %w", err)
	}
	return appts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Appointment, exclusive bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("staff_id", a.StaffID).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("notes", a.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment query failed: %w", err)
	}

	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if exclusive {
			if err := db.LockStaff(ctx, tx, a.StaffID); err != nil {
				return err
			}
			if err := ensureFree(ctx, tx, a.StaffID, a.Range(), a.ID); err != nil {
				return err
			}
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&a.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Either gone or completed/cancelled since it was read.
				if _, getErr := r.GetByID(ctx, a.ID); getErr != nil {
					return getErr
				}
				return ErrNotModifiable
			}
			return mapWriteError(err, "update")
		}
		return nil
	})
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update appointment status query failed: %w", err)
	}

	a, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either gone or someone else changed the status first.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("update appointment status failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.appointments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Overlapping(ctx context.Context, staffID string, rng timerange.Range, excludeID string) ([]*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(appointmentColumns...).
		From("public.appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.Lt{"start_time": rng.End}).
		Where(squirrel.Gt{"end_time": rng.Start}).
		OrderBy("start_time ASC")
	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query overlapping appointments failed: %w", err)
	}
	defer rows.Close()

	var appts []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments failed: %w", err)
	}
	return appts, nil
}

package blockedtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/salon-booking-backend/internal/db"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/timerange"
)

type Repository interface {
	Create(ctx context.Context, s *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Delete(ctx context.Context, id string) error
	// Overlapping returns the staff member's slots intersecting r, ordered by start.
	Overlapping(ctx context.Context, staffID string, r timerange.Range) ([]*Slot, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var slotColumns = []string{"id", "staff_id", "start_time", "end_time", "reason", "created_at"}

func scanSlot(row pgx.Row, extra ...any) (*Slot, error) {
	var s Slot
	dest := append([]any{&s.ID, &s.StaffID, &s.StartTime, &s.EndTime, &s.Reason, &s.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blocked_time_slots").
		Columns("staff_id", "start_time", "end_time", "reason").
		Values(s.StaffID, s.StartTime, s.EndTime, s.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blocked time query failed: %w", err)
	}

	// Serialize with bookings for the same staff member.
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := db.LockStaff(ctx, tx, s.StaffID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
			if db.HasCode(err, pgerrcode.ForeignKeyViolation) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("create blocked time failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns...).
		From("public.blocked_time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blocked time query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blocked time failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(slotColumns, "count(*) OVER() AS total_count")...).
		From("public.blocked_time_slots")

	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"staff_id": filter.StaffID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": *filter.To})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("start_time " + orderDir)

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
		return nil, 0, fmt.Errorf("build list blocked time query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blocked time failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	var total int
	for rows.Next() {
		s, err := scanSlot(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan blocked time failed: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blocked time failed: %w", err)
	}
	return slots, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blocked_time_slots").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete blocked time query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blocked time failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Overlapping(ctx context.Context, staffID string, rng timerange.Range) ([]*Slot, error) {
	// Half-open overlap: start < other.end AND end > other.start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns...).
		From("public.blocked_time_slots").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_time": rng.End}).
		Where(squirrel.Gt{"end_time": rng.Start}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlapping blocked time query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overlapping blocked time failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked time failed: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked time failed: %w", err)
	}
	return slots, nil
}

package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/salon-booking-backend/internal/db"
)

// Repository defines data access methods for locations.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var selectColumns = []string{
	"id", "name", "address", "timezone",
	"opening_hours_start::text", "opening_hours_end::text",
	"is_open", "created_at",
}

func scanLocation(row pgx.Row, extra ...any) (*Location, error) {
	var l Location
	dest := append([]any{
		&l.ID, &l.Name, &l.Address, &l.Timezone,
		&l.OpeningHoursStart, &l.OpeningHoursEnd,
		&l.IsOpen, &l.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *pgxRepository) Create(ctx context.Context, loc *Location) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.locations").
		Columns("name", "address", "timezone", "opening_hours_start", "opening_hours_end", "is_open").
		Values(loc.Name, loc.Address, loc.Timezone, loc.OpeningHoursStart, loc.OpeningHoursEnd, loc.IsOpen).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create location query failed: %w", err)
	}

	// Postgres casts "HH:MM:SS" to TIME on insert.
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&loc.ID, &loc.CreatedAt); err != nil {
		return fmt.Errorf("create location failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(selectColumns...).
		From("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get location query failed: %w", err)
	}

	l, err := scanLocation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get location failed: %w", err)
	}
	return l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(selectColumns, "count(*) OVER() AS total_count")...).
		From("public.locations")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.IsOpen != nil {
		query = query.Where(squirrel.Eq{"is_open": *filter.IsOpen})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("name " + orderDir)

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
		return nil, 0, fmt.Errorf("build list locations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations failed: %w", err)
	}
	defer rows.Close()

	var locations []*Location
	var total int
	for rows.Next() {
		l, err := scanLocation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan location failed: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate locations failed: %w", err)
	}

	return locations, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, loc *Location) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.locations").
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("timezone", loc.Timezone).
		Set("opening_hours_start", loc.OpeningHoursStart).
		Set("opening_hours_end", loc.OpeningHoursEnd).
		Set("is_open", loc.IsOpen).
		Where(squirrel.Eq{"id": loc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update location query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update location failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete location query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.HasCode(err, pgerrcode.ForeignKeyViolation) {
			return ErrInUse
		}
		return fmt.Errorf("delete location failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

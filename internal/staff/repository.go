package staff

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

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, m *Member) error
	SetAvatar(ctx context.Context, id, path string) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var memberColumns = []string{
	"s.id", "s.name", "COALESCE(s.email, '')", "s.phone", "s.status", "s.home_service",
	"COALESCE(s.avatar_path, '')", "s.created_at", "s.updated_at",
	"COALESCE(array_agg(sl.location_id::text ORDER BY sl.location_id) FILTER (WHERE sl.location_id IS NOT NULL), '{}')",
}

func memberSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(memberColumns...).
		From("public.staff_members s").
		LeftJoin("public.staff_locations sl ON sl.staff_id = s.id").
		GroupBy("s.id")
}

func scanMember(row pgx.Row, extra ...any) (*Member, error) {
	var m Member
	dest := append([]any{
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Status, &m.HomeService,
		&m.AvatarPath, &m.CreatedAt, &m.UpdatedAt, &m.LocationIDs,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// replaceLocations rewrites the member's location assignments inside tx.
func replaceLocations(ctx context.Context, tx pgx.Tx, staffID string, locationIDs []string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.staff_locations").Where(squirrel.Eq{"staff_id": staffID}).ToSql()
	if err != nil {
		return fmt.Errorf("build clear staff locations query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear staff locations failed: %w", err)
	}
	if len(locationIDs) == 0 {
		return nil
	}

	insert := psql.Insert("public.staff_locations").Columns("staff_id", "location_id")
	for _, locID := range locationIDs {
		insert = insert.Values(staffID, locID)
	}
	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build insert staff locations query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if db.HasCode(err, pgerrcode.ForeignKeyViolation) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("insert staff locations failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, m *Member) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Insert("public.staff_members").
			Columns("name", "email", "phone", "status", "home_service").
			Values(m.Name, nullable(m.Email), m.Phone, m.Status, m.HomeService).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create staff query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			if db.HasCode(err, pgerrcode.UniqueViolation) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("create staff failed: %w", err)
		}
		return replaceLocations(ctx, tx, m.ID, m.LocationIDs)
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	query, args, err := memberSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get staff query failed: %w", err)
	}

	m, err := scanMember(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	query := memberSelect().Column("count(*) OVER() AS total_count")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"s.name": "%" + filter.Name + "%"})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"s.status": filter.Status})
	}
	if filter.HomeService != nil {
		query = query.Where(squirrel.Eq{"s.home_service": *filter.HomeService})
	}
	if filter.LocationID != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.staff_locations x WHERE x.staff_id = s.id AND x.location_id = ?)",
			filter.LocationID,
		))
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("s.name " + orderDir)

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
		return nil, 0, fmt.Errorf("build list staff query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	var total int
	for rows.Next() {
		m, err := scanMember(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan staff failed: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate staff failed: %w", err)
	}
	return members, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, m *Member) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Update("public.staff_members").
			Set("name", m.Name).
			Set("email", nullable(m.Email)).
			Set("phone", m.Phone).
			Set("status", m.Status).
			Set("home_service", m.HomeService).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": m.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update staff query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&m.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			if db.HasCode(err, pgerrcode.UniqueViolation) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("update staff failed: %w", err)
		}
		return replaceLocations(ctx, tx, m.ID, m.LocationIDs)
	})
}

func (r *pgxRepository) SetAvatar(ctx context.Context, id, path string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.staff_members").
		Set("avatar_path", nullable(path)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set avatar query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set avatar failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.staff_members").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete staff query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.HasCode(err, pgerrcode.ForeignKeyViolation) {
			return ErrInUse
		}
		return fmt.Errorf("delete staff failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package client

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
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// nullable stores empty strings as NULL so the partial unique index on email ignores them.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *pgxRepository) Create(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clients").
		Columns("name", "email", "phone", "notes").
		Values(cl.Name, nullable(cl.Email), cl.Phone, cl.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create client query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cl.ID, &cl.CreatedAt); err != nil {
		if db.HasCode(err, pgerrcode.UniqueViolation) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "COALESCE(email, '')", "phone", "notes", "created_at").
		From("public.clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client query failed: %w", err)
	}

	var cl Client
	err = r.pool.QueryRow(ctx, query, args...).Scan(&cl.ID, &cl.Name, &cl.Email, &cl.Phone, &cl.Notes, &cl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client failed: %w", err)
	}
	return &cl, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "name", "COALESCE(email, '')", "phone", "notes", "created_at", "count(*) OVER() AS total_count").
		From("public.clients")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"email": kw},
			squirrel.ILike{"phone": kw},
		})
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
		return nil, 0, fmt.Errorf("build list clients query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	var total int
	for rows.Next() {
		var cl Client
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Email, &cl.Phone, &cl.Notes, &cl.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, &cl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients failed: %w", err)
	}
	return clients, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clients").
		Set("name", cl.Name).
		Set("email", nullable(cl.Email)).
		Set("phone", cl.Phone).
		Set("notes", cl.Notes).
		Where(squirrel.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update client query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.HasCode(err, pgerrcode.UniqueViolation) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.clients").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete client query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.HasCode(err, pgerrcode.ForeignKeyViolation) {
			return ErrInUse
		}
		return fmt.Errorf("delete client failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package client

import (
	"context"
	"errors"
	"log/slog"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const clientColumns = `id, name, email, password_hash, phone, address, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Save(ctx context.Context, c domain.Client) (*domain.Client, error) {
	if c.ID == 0 {
		const q = `
INSERT INTO clients (name, email, password_hash, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + clientColumns
		return r.scanClient(r.pool.QueryRow(ctx, q, c.Name, c.Email, c.PasswordHash, c.Phone, c.Address))
	}

	const q = `
UPDATE clients
SET name = $2, email = $3, password_hash = $4, phone = $5, address = $6, updated_at = now()
WHERE id = $1
RETURNING ` + clientColumns
	return r.scanClient(r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Email, c.PasswordHash, c.Phone, c.Address))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanClient(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE email = $1 LIMIT 1`
	return r.scanClient(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		r.logger.ErrorContext(ctx, "client repo: exists by email", slog.Any("error", err))
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Client, 0)
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&c.Phone,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("client repo: scan error", slog.Any("error", err))
		return nil, err
	}
	return &c, nil
}

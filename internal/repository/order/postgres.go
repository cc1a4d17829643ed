package order

import (
	"context"
	"errors"
	"log/slog"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, destination_address, weight, delivery_status, status_message, created_at, updated_at`

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

func (r *postgresRepo) Save(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if o.ID == 0 {
		const q = `
INSERT INTO orders (destination_address, weight, delivery_status, status_message)
VALUES ($1, $2, $3, $4)
RETURNING ` + orderColumns
		return r.scanOrder(r.pool.QueryRow(ctx, q, o.DestinationAddress, o.Weight, o.DeliveryStatus, o.StatusMessage))
	}

	const q = `
UPDATE orders
SET destination_address = $2, weight = $3, delivery_status = $4, status_message = $5, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	return r.scanOrder(r.pool.QueryRow(ctx, q, o.ID, o.DestinationAddress, o.Weight, o.DeliveryStatus, o.StatusMessage))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Order, 0)
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.DestinationAddress,
		&o.Weight,
		&o.DeliveryStatus,
		&o.StatusMessage,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order repo: scan error", slog.Any("error", err))
		return nil, err
	}
	return &o, nil
}

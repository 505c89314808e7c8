package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/reservas/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds configuration for the Postgres reservation repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using Postgres.
// The partial unique index on (service, date) is what actually prevents double booking;
// CountActive only lets the conversation fail early.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed reservation repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Pool == nil {
		return nil, errors.New("pool cannot be nil")
	}

	return &postgresRepository{pool: cfg.Pool}, nil
}

// CountActive counts non-cancelled reservations for the slot
func (r *postgresRepository) CountActive(ctx context.Context, input *CountActiveInput) (int, error) {
	if input == nil {
		return 0, errors.New("input cannot be nil")
	}

	const query = `
SELECT COUNT(*)
FROM reservations
WHERE service = $1 AND date = $2 AND status <> 'cancelled'`

	var count int
	if err := r.queryRow(ctx, query, string(input.Service), input.Date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	return count, nil
}

// InsertReservation inserts a pending reservation; created_at is set by the database
func (r *postgresRepository) InsertReservation(ctx context.Context, input *InsertReservationInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}

	const stmt = `
INSERT INTO reservations (service, date, contact, requester_name, requester_email)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt,
		string(input.Service),
		input.Date,
		input.Contact,
		input.RequesterName,
		input.RequesterEmail,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrSlotTaken
		}
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}

	return id, nil
}

// BookIfAvailable runs the availability check and the insert in one transaction
func (r *postgresRepository) BookIfAvailable(ctx context.Context, input *InsertReservationInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}

	var id int64
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		count, err := r.CountActive(txCtx, &CountActiveInput{
			Service: input.Service,
			Date:    input.Date,
		})
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}

		id, err = r.InsertReservation(txCtx, input)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListReservations returns all reservations ordered by creation time, newest first
func (r *postgresRepository) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	const query = `
SELECT id, service, date, contact, COALESCE(requester_name, ''), COALESCE(requester_email, ''), status, created_at
FROM reservations
ORDER BY created_at DESC, id DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []*models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		var service, status string
		if err := rows.Scan(&res.ID, &service, &res.Date, &res.Contact, &res.RequesterName, &res.RequesterEmail, &status, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		res.Service = models.Service(service)
		res.Status = models.ReservationStatus(status)
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}

	return reservations, nil
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *postgresRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

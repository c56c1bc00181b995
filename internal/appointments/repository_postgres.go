package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the subset of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGRepository persists appointments to PostgreSQL for self-hosted
// deployments. Date and time stay TEXT so ordering and comparison semantics
// match the document store exactly.
type PGRepository struct {
	db db
}

// NewPGRepository builds a Postgres-backed repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PGRepository{db: pool}
}

// NewPGRepositoryWithDB allows injecting mocks for tests.
func NewPGRepositoryWithDB(db db) *PGRepository {
	return &PGRepository{db: db}
}

var _ Repository = (*PGRepository)(nil)

// Create inserts a new row; the id is assigned here and created_at by the
// database, keeping "server timestamp" semantics.
func (r *PGRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	created := *appt
	created.ID = uuid.NewString()

	var createdAt time.Time
	err := r.db.QueryRow(ctx, `
		INSERT INTO appointments (id, name, email, contact, date, time, symptoms, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, created.ID, created.Name, created.Email, created.Contact,
		created.Date, created.Time, created.Symptoms, string(created.Status)).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("appointments: insert: %w", err)
	}
	created.CreatedAt = createdAt
	return &created, nil
}

// List returns all rows ordered by (date, time) ascending.
func (r *PGRepository) List(ctx context.Context) ([]*Appointment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, contact, date, time, symptoms, status, created_at
		FROM appointments
		ORDER BY date ASC, time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	var appts []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list rows: %w", err)
	}
	return appts, nil
}

// GetByID loads one row or ErrNotFound.
func (r *PGRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, contact, date, time, symptoms, status, created_at
		FROM appointments
		WHERE id = $1
	`, id)
	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return appt, nil
}

// UpdateStatus overwrites only the status column.
func (r *PGRepository) UpdateStatus(ctx context.Context, id string, s Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments SET status = $2 WHERE id = $1
	`, id, string(s))
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var (
		appt   Appointment
		status string
	)
	if err := row.Scan(&appt.ID, &appt.Name, &appt.Email, &appt.Contact,
		&appt.Date, &appt.Time, &appt.Symptoms, &status, &appt.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("appointments: scan row: %w", err)
	}
	appt.Status = Status(status)
	return &appt, nil
}

package contact

import (
	"context"
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

// PGRepository persists contact messages to PostgreSQL for self-hosted
// deployments.
type PGRepository struct {
	db db
}

// NewPGRepository builds a Postgres-backed repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	if pool == nil {
		panic("contact: pgx pool required")
	}
	return &PGRepository{db: pool}
}

// NewPGRepositoryWithDB allows injecting mocks for tests.
func NewPGRepositoryWithDB(db db) *PGRepository {
	return &PGRepository{db: db}
}

var _ Repository = (*PGRepository)(nil)

// Create inserts a new row; created_at is assigned by the database.
func (r *PGRepository) Create(ctx context.Context, msg *Message) (*Message, error) {
	created := *msg
	created.ID = uuid.NewString()

	var createdAt time.Time
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, created.ID, created.Name, created.Email, created.Message).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("contact: insert: %w", err)
	}
	created.CreatedAt = createdAt
	return &created, nil
}

// List returns all rows, newest first.
func (r *PGRepository) List(ctx context.Context) ([]*Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("contact: list: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("contact: scan row: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact: list rows: %w", err)
	}
	return msgs, nil
}

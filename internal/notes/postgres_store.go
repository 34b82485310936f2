package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists notes in the relational database.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store backed by pgx.
func NewPostgresStore(db DB) *PostgresStore {
	if db == nil {
		panic("notes: pgx db required")
	}
	return &PostgresStore{db: db}
}

// Create inserts a new note.
func (s *PostgresStore) Create(ctx context.Context, leadID uuid.UUID, req CreateRequest, now time.Time) (*Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n := &Note{
		ID:        uuid.New(),
		LeadID:    leadID,
		Content:   req.Content,
		CreatedAt: now,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO lead_notes (id, lead_id, content, created_at)
		VALUES ($1, $2, $3, $4)`,
		n.ID, n.LeadID, n.Content, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("notes: insert: %w", err)
	}
	return n, nil
}

// ListByLead returns a lead's notes, newest first.
func (s *PostgresStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*Note, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, lead_id, content, created_at
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY created_at DESC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	defer rows.Close()

	var result []*Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.LeadID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("notes: scan: %w", err)
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}

// Delete removes a note.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM lead_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("notes: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

package notifications

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

// PostgresStore persists notifications in the relational database.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store backed by pgx.
func NewPostgresStore(db DB) *PostgresStore {
	if db == nil {
		panic("notifications: pgx db required")
	}
	return &PostgresStore{db: db}
}

// Create inserts a new unread notification.
func (s *PostgresStore) Create(ctx context.Context, req CreateRequest, now time.Time) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		LeadID:    req.LeadID,
		Type:      req.Type,
		Read:      false,
		CreatedAt: now,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO notifications (id, lead_id, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.LeadID, string(n.Type), n.Read, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("notifications: insert: %w", err)
	}
	return n, nil
}

// ListCreatedBetween returns notifications created in [from, to).
func (s *PostgresStore) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, lead_id, type, read, created_at
		FROM notifications
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("notifications: list between: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// ListUnread returns up to UnreadLimit unread notifications, newest
// first.
func (s *PostgresStore) ListUnread(ctx context.Context) ([]*Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, lead_id, type, read, created_at
		FROM notifications
		WHERE read = FALSE
		ORDER BY created_at DESC
		LIMIT $1`, UnreadLimit)
	if err != nil {
		return nil, fmt.Errorf("notifications: list unread: %w", err)
	}
	defer rows.Close()
	return scanNotifications(rows)
}

// CountUnread returns the number of unread notifications.
func (s *PostgresStore) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE read = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("notifications: count unread: %w", err)
	}
	return count, nil
}

// MarkRead flags one notification as read.
func (s *PostgresStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("notifications: mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification as read.
func (s *PostgresStore) MarkAllRead(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("notifications: mark all read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanNotifications(rows pgx.Rows) ([]*Notification, error) {
	var result []*Notification
	for rows.Next() {
		var n Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.LeadID, &typ, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("notifications: scan: %w", err)
		}
		n.Type = Type(typ)
		result = append(result, &n)
	}
	return result, rows.Err()
}

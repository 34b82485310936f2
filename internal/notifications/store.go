package notifications

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found
var ErrNotificationNotFound = errors.New("notification not found")

// UnreadLimit caps how many unread notifications a listing returns.
const UnreadLimit = 50

// Store defines the interface for notification persistence.
type Store interface {
	Create(ctx context.Context, req CreateRequest, now time.Time) (*Notification, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Notification, error)
	ListUnread(ctx context.Context) ([]*Notification, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

// InMemoryStore keeps notifications in memory for tests and
// database-less runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Notification
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[uuid.UUID]*Notification)}
}

// Create records a new unread notification.
func (s *InMemoryStore) Create(ctx context.Context, req CreateRequest, now time.Time) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		LeadID:    req.LeadID,
		Type:      req.Type,
		Read:      false,
		CreatedAt: now,
	}
	s.mu.Lock()
	s.items[n.ID] = n
	s.mu.Unlock()

	c := *n
	return &c, nil
}

// ListCreatedBetween returns notifications created in [from, to).
func (s *InMemoryStore) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Notification
	for _, n := range s.items {
		if !n.CreatedAt.Before(from) && n.CreatedAt.Before(to) {
			c := *n
			out = append(out, &c)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListUnread returns up to UnreadLimit unread notifications, newest
// first.
func (s *InMemoryStore) ListUnread(ctx context.Context) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Notification
	for _, n := range s.items {
		if !n.Read {
			c := *n
			out = append(out, &c)
		}
	}
	sortNewestFirst(out)
	if len(out) > UnreadLimit {
		out = out[:UnreadLimit]
	}
	return out, nil
}

// CountUnread returns the number of unread notifications.
func (s *InMemoryStore) CountUnread(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flags one notification as read.
func (s *InMemoryStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[id]
	if !ok {
		return ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

// MarkAllRead flags every unread notification as read.
func (s *InMemoryStore) MarkAllRead(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, n := range s.items {
		if !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func sortNewestFirst(ns []*Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].CreatedAt.After(ns[j].CreatedAt)
	})
}

package notes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the interface for note persistence.
type Store interface {
	Create(ctx context.Context, leadID uuid.UUID, req CreateRequest, now time.Time) (*Note, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryStore keeps notes in memory for tests and database-less runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Note
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[uuid.UUID]*Note)}
}

// Create records a new note.
func (s *InMemoryStore) Create(ctx context.Context, leadID uuid.UUID, req CreateRequest, now time.Time) (*Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n := &Note{
		ID:        uuid.New(),
		LeadID:    leadID,
		Content:   req.Content,
		CreatedAt: now,
	}
	s.mu.Lock()
	s.items[n.ID] = n
	s.mu.Unlock()

	c := *n
	return &c, nil
}

// ListByLead returns a lead's notes, newest first.
func (s *InMemoryStore) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Note
	for _, n := range s.items {
		if n.LeadID == leadID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a note.
func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNoteNotFound
	}
	delete(s.items, id)
	return nil
}

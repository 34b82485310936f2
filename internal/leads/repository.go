package leads

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows a lead listing. Zero values mean "no filter".
type ListFilter struct {
	Search    string
	Status    Status
	LeadType  string
	Source    string
	Priority  Priority
	Language  string
	BudgetMin *int64
	BudgetMax *int64
}

// Repository defines the interface for lead storage.
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest, now time.Time) (*Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateLeadRequest, now time.Time) (*Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkContacted records a contact touch. It is the only writer of
	// nextFollowUpAt besides explicit updates: when next is non-nil the
	// follow-up is rescheduled to it.
	MarkContacted(ctx context.Context, id uuid.UUID, contactedAt time.Time, next *time.Time) (*Lead, error)
}

// InMemoryRepository keeps leads in memory. Used in tests and when the
// service runs without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]*Lead
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[uuid.UUID]*Lead),
	}
}

// Create validates the request and stores a new lead.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest, now time.Time) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := req.NewLead(now)

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return clone(lead), nil
}

// GetByID retrieves a lead by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return clone(lead), nil
}

// List returns leads matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if matches(l, filter) {
			out = append(out, clone(l))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies a partial update to an existing lead.
func (r *InMemoryRepository) Update(ctx context.Context, id uuid.UUID, req *UpdateLeadRequest, now time.Time) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	req.Apply(lead, now)
	return clone(lead), nil
}

// Delete removes a lead.
func (r *InMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

// MarkContacted sets lastContactedAt and optionally reschedules the
// follow-up.
func (r *InMemoryRepository) MarkContacted(ctx context.Context, id uuid.UUID, contactedAt time.Time, next *time.Time) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	lead.LastContactedAt = &contactedAt
	if next != nil {
		lead.NextFollowUpAt = next
	}
	lead.UpdatedAt = contactedAt
	return clone(lead), nil
}

func matches(l *Lead, f ListFilter) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.LeadType != "" && l.LeadType != f.LeadType {
		return false
	}
	if f.Source != "" && l.Source != f.Source {
		return false
	}
	if f.Priority != "" && l.Priority != f.Priority {
		return false
	}
	if f.Language != "" && l.PreferredLanguage != f.Language {
		return false
	}
	if f.BudgetMin != nil && (l.BudgetMin == nil || *l.BudgetMin < *f.BudgetMin) {
		return false
	}
	if f.BudgetMax != nil && (l.BudgetMax == nil || *l.BudgetMax > *f.BudgetMax) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(strings.Join(append([]string{l.Name, l.Phone, l.Email, l.Notes}, l.Areas...), "\n"))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func clone(l *Lead) *Lead {
	c := *l
	c.Areas = append([]string(nil), l.Areas...)
	return &c
}

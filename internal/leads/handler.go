package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// Handler handles HTTP requests for leads
type Handler struct {
	repo          Repository
	logger        *logging.Logger
	loc           *time.Location
	sla           time.Duration
	followUpDelay time.Duration

	// now is injectable for tests; the evaluation instant is fixed once
	// per request so every classification in a response agrees.
	now func() time.Time
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, loc *time.Location, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		repo:          repo,
		logger:        logger,
		loc:           loc,
		sla:           NewContactSLA,
		followUpDelay: DefaultFollowUpDelay,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithScheduling overrides the new-contact SLA used for urgency
// evaluation and the delay applied by auto-scheduled follow-ups. Zero or
// negative values keep the defaults.
func (h *Handler) WithScheduling(sla, followUpDelay time.Duration) *Handler {
	if sla > 0 {
		h.sla = sla
	}
	if followUpDelay > 0 {
		h.followUpDelay = followUpDelay
	}
	return h
}

// CreateLead handles POST /leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Create(r.Context(), &req, h.now())
	if err != nil {
		h.logger.Error("failed to create lead", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("lead created", "id", lead.ID, "name", lead.DisplayName())
	writeJSON(w, http.StatusCreated, lead)
}

// LeadResponse pairs a lead with its computed urgency.
type LeadResponse struct {
	*Lead
	Urgency Urgency `json:"urgency"`
}

// GetLead handles GET /leads/{leadID} requests
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get lead", "error", err, "id", id)
		http.Error(w, "failed to get lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LeadResponse{Lead: lead, Urgency: ClassifyUrgency(lead, h.now(), h.sla)})
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
	Count int            `json:"count"`
	Sort  SortMode       `json:"sort"`
}

// ListLeads handles GET /leads requests. Results are filtered by query
// params and ordered by the requested sort mode (urgency by default).
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Search:   q.Get("search"),
		LeadType: q.Get("lead_type"),
		Source:   q.Get("source"),
		Language: q.Get("language"),
	}
	if s := q.Get("status"); s != "" {
		filter.Status = ParseStatus(s)
	}
	// Unlike ranking, filtering has no sensible fallback for a bad
	// priority value, so unrecognized ones are ignored.
	if p := Priority(q.Get("priority")); p.IsValid() {
		filter.Priority = p
	}
	if v := q.Get("budget_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.BudgetMin = &n
		}
	}
	if v := q.Get("budget_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.BudgetMax = &n
		}
	}

	all, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	now := h.now()
	mode := ParseSortMode(q.Get("sort"))
	sorted := SortLeads(all, mode, now, h.sla)

	resp := ListLeadsResponse{
		Leads: make([]LeadResponse, len(sorted)),
		Count: len(sorted),
		Sort:  mode,
	}
	for i, l := range sorted {
		resp.Leads[i] = LeadResponse{Lead: l, Urgency: ClassifyUrgency(l, now, h.sla)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateLead handles PATCH /leads/{leadID} requests
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Update(r.Context(), id, &req, h.now())
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update lead", "error", err, "id", id)
		http.Error(w, "failed to update lead", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// DeleteLead handles DELETE /leads/{leadID} requests
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete lead", "error", err, "id", id)
		http.Error(w, "failed to delete lead", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkContactedRequest is the body for POST /leads/{leadID}/contacted.
type MarkContactedRequest struct {
	AutoScheduleNext bool `json:"auto_schedule_next"`
}

// MarkContacted handles POST /leads/{leadID}/contacted requests
func (h *Handler) MarkContacted(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	var req MarkContactedRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	now := h.now()
	var next *time.Time
	if req.AutoScheduleNext {
		n := now.Add(h.followUpDelay)
		next = &n
	}

	lead, err := h.repo.MarkContacted(r.Context(), id, now, next)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "lead not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to mark lead contacted", "error", err, "id", id)
		http.Error(w, "failed to mark lead contacted", http.StatusInternalServerError)
		return
	}

	h.logger.Info("lead contacted", "id", lead.ID, "auto_schedule_next", req.AutoScheduleNext)
	writeJSON(w, http.StatusOK, lead)
}

// DashboardResponse carries the bucketed dashboard view. Each bucket is
// ranked with the urgency comparator.
type DashboardResponse struct {
	Buckets    Buckets `json:"buckets"`
	TotalLeads int     `json:"total_leads"`
}

// Dashboard handles GET /dashboard requests
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context(), ListFilter{})
	if err != nil {
		h.logger.Error("failed to load dashboard", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	now := h.now()
	buckets := BucketLeads(all, now, h.loc, h.sla)
	buckets.Overdue = SortByUrgency(buckets.Overdue, now, h.sla)
	buckets.DueToday = SortByUrgency(buckets.DueToday, now, h.sla)
	buckets.DueNext7Days = SortByUrgency(buckets.DueNext7Days, now, h.sla)

	writeJSON(w, http.StatusOK, DashboardResponse{
		Buckets:    buckets,
		TotalLeads: len(all),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

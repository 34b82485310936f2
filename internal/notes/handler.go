package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// Handler exposes note endpoints nested under a lead.
type Handler struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler creates a note handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger.Named("notes-handler"), now: time.Now}
}

// Create handles POST /leads/{leadID}/notes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	leadID, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.store.Create(r.Context(), leadID, req, h.now())
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create note", "lead_id", leadID, "error", err)
		http.Error(w, "failed to create note", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, note)
}

// ListByLead handles GET /leads/{leadID}/notes.
func (h *Handler) ListByLead(w http.ResponseWriter, r *http.Request) {
	leadID, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	ns, err := h.store.ListByLead(r.Context(), leadID)
	if err != nil {
		h.logger.Error("failed to list notes", "lead_id", leadID, "error", err)
		http.Error(w, "failed to list notes", http.StatusInternalServerError)
		return
	}
	if ns == nil {
		ns = []*Note{}
	}
	h.writeJSON(w, http.StatusOK, map[string][]*Note{"notes": ns})
}

// Delete handles DELETE /leads/{leadID}/notes/{noteID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID, err := uuid.Parse(chi.URLParam(r, "noteID"))
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete note", "note_id", noteID, "error", err)
		http.Error(w, "failed to delete note", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

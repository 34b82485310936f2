package notifications

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// Handler exposes notification endpoints.
type Handler struct {
	store  Store
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a notification handler.
func NewHandler(store Store, svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, svc: svc, logger: logger.Named("notifications-handler")}
}

// ListUnreadResponse wraps the unread listing.
type ListUnreadResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
}

// ListUnread handles GET /notifications.
func (h *Handler) ListUnread(w http.ResponseWriter, r *http.Request) {
	ns, err := h.store.ListUnread(r.Context())
	if err != nil {
		h.logger.Error("failed to list notifications", "error", err)
		http.Error(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}
	count, err := h.store.CountUnread(r.Context())
	if err != nil {
		h.logger.Error("failed to count notifications", "error", err)
		http.Error(w, "failed to count notifications", http.StatusInternalServerError)
		return
	}
	if ns == nil {
		ns = []*Notification{}
	}
	h.writeJSON(w, http.StatusOK, ListUnreadResponse{Notifications: ns, UnreadCount: count})
}

// CountUnread handles GET /notifications/count.
func (h *Handler) CountUnread(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CountUnread(r.Context())
	if err != nil {
		h.logger.Error("failed to count notifications", "error", err)
		http.Error(w, "failed to count notifications", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// MarkRead handles POST /notifications/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	if err := h.store.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to mark notification read", "notification_id", id, "error", err)
		http.Error(w, "failed to mark notification read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.store.MarkAllRead(r.Context())
	if err != nil {
		h.logger.Error("failed to mark all notifications read", "error", err)
		http.Error(w, "failed to mark all notifications read", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// Sweep handles POST /notifications/sweep, a manual trigger for the
// same pass the background worker runs on its interval.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		http.Error(w, "sweep not configured", http.StatusServiceUnavailable)
		return
	}
	result, err := h.svc.Sweep(r.Context())
	if err != nil {
		h.logger.Error("sweep failed", "error", err)
		http.Error(w, "sweep failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oasisrealty/leadcrm/internal/auth"
	httpmiddleware "github.com/oasisrealty/leadcrm/internal/http/middleware"
	"github.com/oasisrealty/leadcrm/internal/leads"
	"github.com/oasisrealty/leadcrm/internal/notes"
	"github.com/oasisrealty/leadcrm/internal/notifications"
	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger               *logging.Logger
	LeadsHandler         *leads.Handler
	NotesHandler         *notes.Handler
	NotificationsHandler *notifications.Handler
	AuthHandler          *auth.Handler
	AuthSecret           string
	MetricsHandler       http.Handler
	CORSAllowedOrigins   []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AuthHandler != nil {
			public.Post("/auth/login", cfg.AuthHandler.Login)
		}
	})

	// Operator endpoints
	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.OperatorJWT(cfg.AuthSecret))

		private.Route("/leads", func(r chi.Router) {
			r.Get("/", cfg.LeadsHandler.ListLeads)
			r.Post("/", cfg.LeadsHandler.CreateLead)
			r.Route("/{leadID}", func(r chi.Router) {
				r.Get("/", cfg.LeadsHandler.GetLead)
				r.Patch("/", cfg.LeadsHandler.UpdateLead)
				r.Delete("/", cfg.LeadsHandler.DeleteLead)
				r.Post("/contacted", cfg.LeadsHandler.MarkContacted)
				if cfg.NotesHandler != nil {
					r.Get("/notes", cfg.NotesHandler.ListByLead)
					r.Post("/notes", cfg.NotesHandler.Create)
					r.Delete("/notes/{noteID}", cfg.NotesHandler.Delete)
				}
			})
		})

		private.Get("/dashboard", cfg.LeadsHandler.Dashboard)

		if cfg.NotificationsHandler != nil {
			private.Route("/notifications", func(r chi.Router) {
				r.Get("/", cfg.NotificationsHandler.ListUnread)
				r.Get("/count", cfg.NotificationsHandler.CountUnread)
				r.Post("/read-all", cfg.NotificationsHandler.MarkAllRead)
				r.Post("/{id}/read", cfg.NotificationsHandler.MarkRead)
				r.Post("/sweep", cfg.NotificationsHandler.Sweep)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

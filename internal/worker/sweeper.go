package worker

import (
	"context"
	"time"

	"github.com/oasisrealty/leadcrm/internal/notifications"
	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// Sweeper periodically runs the notification sweep so overdue leads
// surface without anyone opening the dashboard.
type Sweeper struct {
	svc      *notifications.Service
	logger   *logging.Logger
	interval time.Duration
}

// NewSweeper creates a sweep worker.
func NewSweeper(svc *notifications.Service, logger *logging.Logger) *Sweeper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		svc:      svc,
		logger:   logger.Named("sweeper"),
		interval: 15 * time.Minute,
	}
}

// WithInterval sets the sweep interval.
func (s *Sweeper) WithInterval(interval time.Duration) *Sweeper {
	if interval > 0 {
		s.interval = interval
	}
	return s
}

// Start runs the sweep worker. Blocks until context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting notification sweeper", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run once immediately on startup
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification sweeper shutting down")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if _, err := s.svc.Sweep(ctx); err != nil {
		s.logger.Error("sweep failed", "error", err)
	}
}

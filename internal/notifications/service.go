package notifications

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oasisrealty/leadcrm/internal/leads"
	"github.com/oasisrealty/leadcrm/internal/observability/metrics"
	"github.com/oasisrealty/leadcrm/pkg/logging"
)

var sweepTracer = otel.Tracer("leadcrm/notification-sweep")

// Service runs the notification sweep: it snapshots all leads,
// plans which alerts are due, and persists the ones not already
// raised today.
type Service struct {
	repo    leads.Repository
	store   Store
	marker  *DailyMarker
	metrics *metrics.SweepMetrics
	logger  *logging.Logger
	loc     *time.Location
	sla     time.Duration
	now     func() time.Time
}

// NewService wires a sweep service. marker and m may be nil.
func NewService(repo leads.Repository, store Store, marker *DailyMarker, m *metrics.SweepMetrics, loc *time.Location, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	if marker == nil {
		marker = NewDailyMarker(nil, logger)
	}
	return &Service{
		repo:    repo,
		store:   store,
		marker:  marker,
		metrics: m,
		logger:  logger.Named("notification-sweep"),
		loc:     loc,
		sla:     leads.NewContactSLA,
		now:     time.Now,
	}
}

// WithNewContactSLA overrides the new-contact window used when
// classifying leads during a sweep. Zero or negative keeps the default.
func (s *Service) WithNewContactSLA(sla time.Duration) *Service {
	if sla > 0 {
		s.sla = sla
	}
	return s
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	LeadsScanned int `json:"leads_scanned"`
	Created      int `json:"created"`
	Suppressed   int `json:"suppressed"`
}

// Sweep runs one pass. It is safe to call concurrently and repeatedly:
// same-day duplicates are suppressed first by the Redis marker, then by
// the store's own record of today's notifications.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := sweepTracer.Start(ctx, "notifications.sweep")
	defer span.End()

	started := s.now()
	var result SweepResult

	all, err := s.repo.List(ctx, leads.ListFilter{})
	if err != nil {
		s.metrics.ObserveSweepError()
		return result, fmt.Errorf("sweep: list leads: %w", err)
	}
	result.LeadsScanned = len(all)

	dayStart := leads.StartOfDay(started, s.loc)
	existing, err := s.store.ListCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		s.metrics.ObserveSweepError()
		return result, fmt.Errorf("sweep: list today's notifications: %w", err)
	}

	plan := Plan(all, existing, started, s.loc, s.sla)
	for _, req := range plan {
		if !s.marker.Mark(ctx, req.LeadID, req.Type, started, s.loc) {
			result.Suppressed++
			s.metrics.ObserveSuppressed(string(req.Type))
			continue
		}
		if _, err := s.store.Create(ctx, req, s.now()); err != nil {
			s.metrics.ObserveSweepError()
			return result, fmt.Errorf("sweep: create notification: %w", err)
		}
		result.Created++
		s.metrics.ObservePlanned(string(req.Type))
	}

	span.SetAttributes(
		attribute.Int("leads_scanned", result.LeadsScanned),
		attribute.Int("created", result.Created),
		attribute.Int("suppressed", result.Suppressed),
	)
	s.metrics.ObserveSweep(time.Since(started).Seconds(), result.LeadsScanned)
	s.logger.Info("sweep complete",
		"leads_scanned", result.LeadsScanned,
		"created", result.Created,
		"suppressed", result.Suppressed,
		"duration", time.Since(started).String())
	return result, nil
}

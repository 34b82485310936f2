package metrics

import "github.com/prometheus/client_golang/prometheus"

// SweepMetrics exposes counters/histograms for the follow-up sweep.
type SweepMetrics struct {
	plannedTotal    *prometheus.CounterVec
	suppressedTotal *prometheus.CounterVec
	sweepErrors     prometheus.Counter
	sweepDuration   prometheus.Histogram
	leadsScanned    prometheus.Histogram
}

func NewSweepMetrics(reg prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		plannedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcrm",
			Subsystem: "sweep",
			Name:      "notifications_planned_total",
			Help:      "Total notifications raised by the sweep",
		}, []string{"type"}),
		suppressedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadcrm",
			Subsystem: "sweep",
			Name:      "notifications_suppressed_total",
			Help:      "Total notifications skipped by same-day dedup",
		}, []string{"type"}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadcrm",
			Subsystem: "sweep",
			Name:      "errors_total",
			Help:      "Total sweep runs that failed",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadcrm",
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Duration of one sweep run",
			Buckets:   prometheus.DefBuckets,
		}),
		leadsScanned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadcrm",
			Subsystem: "sweep",
			Name:      "leads_scanned",
			Help:      "Leads evaluated per sweep run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.plannedTotal, m.suppressedTotal, m.sweepErrors, m.sweepDuration, m.leadsScanned)
	return m
}

func (m *SweepMetrics) ObservePlanned(typ string) {
	if m == nil {
		return
	}
	m.plannedTotal.WithLabelValues(typ).Inc()
}

func (m *SweepMetrics) ObserveSuppressed(typ string) {
	if m == nil {
		return
	}
	m.suppressedTotal.WithLabelValues(typ).Inc()
}

func (m *SweepMetrics) ObserveSweepError() {
	if m == nil {
		return
	}
	m.sweepErrors.Inc()
}

func (m *SweepMetrics) ObserveSweep(seconds float64, leads int) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(seconds)
	m.leadsScanned.Observe(float64(leads))
}

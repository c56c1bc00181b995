package metrics

import "github.com/prometheus/client_golang/prometheus"

// SiteMetrics exposes counters/histograms for the booking and assistant flows.
type SiteMetrics struct {
	submissionsTotal *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	assistantTotal   *prometheus.CounterVec
	assistantLatency *prometheus.HistogramVec
}

func NewSiteMetrics(reg prometheus.Registerer) *SiteMetrics {
	m := &SiteMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "bookings",
			Name:      "submissions_total",
			Help:      "Total booking submissions by outcome",
		}, []string{"outcome", "reason"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "bookings",
			Name:      "transitions_total",
			Help:      "Total appointment status transitions",
		}, []string{"to"}),
		assistantTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Total diagnosis assistant requests",
		}, []string{"outcome", "cache"}),
		assistantLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "latency_seconds",
			Help:      "Latency of diagnosis assistant requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.transitionsTotal, m.assistantTotal, m.assistantLatency)
	return m
}

func (m *SiteMetrics) ObserveSubmission(outcome, reason string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *SiteMetrics) ObserveTransition(to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(to).Inc()
}

func (m *SiteMetrics) ObserveAssistant(outcome string, cached bool) {
	if m == nil {
		return
	}
	label := "miss"
	if cached {
		label = "hit"
	}
	m.assistantTotal.WithLabelValues(outcome, label).Inc()
}

func (m *SiteMetrics) ObserveAssistantLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.assistantLatency.WithLabelValues(outcome).Observe(seconds)
}

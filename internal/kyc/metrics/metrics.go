// Package metrics holds the Prometheus collectors for the KYC pipeline.
//
// All methods are safe on a nil *Metrics so components can run without metrics in tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsTotal     *prometheus.CounterVec   // by verification type and kind (submit, resubmit)
	StageDuration        *prometheus.HistogramVec // by stage
	StageOutcomesTotal   *prometheus.CounterVec   // by stage and outcome (ok, degraded)
	StageFailuresTotal   *prometheus.CounterVec   // by stage and error category
	ReviewsTotal         *prometheus.CounterVec   // by decision and result
	NotificationFailures prometheus.Counter
	EvidenceCacheHits    prometheus.Counter
	EvidenceCacheMisses  prometheus.Counter
	SimilarityBreaker    *prometheus.GaugeVec // 1 for the current state
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on reg. Tests pass a fresh prometheus.NewRegistry().
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_submissions_total",
			Help: "Verification submissions by type and kind",
		}, []string{"type", "kind"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycgate_evidence_stage_duration_seconds",
			Help:    "Duration of evidence stages",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		StageOutcomesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_evidence_stage_outcomes_total",
			Help: "Evidence stage results, degraded when the stage fell back",
		}, []string{"stage", "outcome"}),
		StageFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_evidence_stage_failures_total",
			Help: "Evidence stage failures by error category",
		}, []string{"stage", "category"}),
		ReviewsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_reviews_total",
			Help: "Review decisions by decision and result",
		}, []string{"decision", "result"}),
		NotificationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_notification_failures_total",
			Help: "Status notifications that could not be dispatched",
		}),
		EvidenceCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_evidence_cache_hits_total",
			Help: "Extraction results served from cache",
		}),
		EvidenceCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_evidence_cache_misses_total",
			Help: "Extraction cache lookups that missed",
		}),
		SimilarityBreaker: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kycgate_similarity_breaker_state",
			Help: "Similarity inference circuit breaker state",
		}, []string{"state"}),
	}
}

func (m *Metrics) IncSubmission(verificationType, kind string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(verificationType, kind).Inc()
}

// ObserveStage records duration and whether the stage degraded to its fallback.
func (m *Metrics) ObserveStage(stage string, degraded bool, durationSeconds float64) {
	if m == nil {
		return
	}
	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}
	m.StageDuration.WithLabelValues(stage).Observe(durationSeconds)
	m.StageOutcomesTotal.WithLabelValues(stage, outcome).Inc()
}

func (m *Metrics) IncStageFailure(stage, category string) {
	if m == nil {
		return
	}
	m.StageFailuresTotal.WithLabelValues(stage, category).Inc()
}

func (m *Metrics) IncReview(decision, result string) {
	if m == nil {
		return
	}
	m.ReviewsTotal.WithLabelValues(decision, result).Inc()
}

func (m *Metrics) IncNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.EvidenceCacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.EvidenceCacheMisses.Inc()
}

// SetBreakerState marks state as current and clears the others.
func (m *Metrics) SetBreakerState(state string) {
	if m == nil {
		return
	}
	for _, s := range []string{"closed", "open", "half_open"} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.SimilarityBreaker.WithLabelValues(s).Set(v)
	}
}

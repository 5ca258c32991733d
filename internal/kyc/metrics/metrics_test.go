package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.ObserveStage("liveness", true, 0.2)
	m.ObserveStage("liveness", false, 0.1)
	m.IncStageFailure("ocr", "timeout")
	m.SetBreakerState("open")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageOutcomesTotal.WithLabelValues("liveness", "degraded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageOutcomesTotal.WithLabelValues("liveness", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailuresTotal.WithLabelValues("ocr", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimilarityBreaker.WithLabelValues("open")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SimilarityBreaker.WithLabelValues("closed")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncSubmission("selfie", "submit")
		m.ObserveStage("ocr", false, 1)
		m.IncReview("verified", "ok")
		m.IncNotificationFailure()
		m.RecordCacheHit()
		m.SetBreakerState("closed")
	})
}

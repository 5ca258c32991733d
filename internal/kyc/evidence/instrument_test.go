package evidence

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/kyc/metrics"
	"kycgate/internal/platform/tracer"
)

func newInstrument(t *testing.T) (Instrument, *bytes.Buffer, *metrics.Metrics) {
	t.Helper()
	var buf bytes.Buffer
	m := metrics.NewWith(prometheus.NewRegistry())
	return Instrument{
		Logger:  slog.New(slog.NewJSONHandler(&buf, nil)),
		Metrics: m,
	}, &buf, m
}

func TestInstrumentRun(t *testing.T) {
	t.Run("success is not counted as failure", func(t *testing.T) {
		in, buf, m := newInstrument(t)

		err := in.Run(context.Background(), StageLiveness, tracer.SpanLiveness, nil, func(context.Context, tracer.Span) error {
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StageOutcomesTotal.WithLabelValues(StageLiveness, "ok")))
	})

	t.Run("failure is logged and counted", func(t *testing.T) {
		in, buf, m := newInstrument(t)

		err := in.Run(context.Background(), StageOCR, tracer.SpanExtract, nil, func(context.Context, tracer.Span) error {
			return NewStageError(StageOCR, CategoryTimeout, "slow engine", nil)
		})
		require.Error(t, err)
		assert.Contains(t, buf.String(), `"stage":"ocr"`)
		assert.Contains(t, buf.String(), `"category":"timeout"`)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailuresTotal.WithLabelValues(StageOCR, "timeout")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StageOutcomesTotal.WithLabelValues(StageOCR, "degraded")))
	})

	t.Run("panic is recovered", func(t *testing.T) {
		in, _, m := newInstrument(t)

		err := in.Run(context.Background(), StageSimilarity, tracer.SpanSimilarity, nil, func(context.Context, tracer.Span) error {
			panic("boom")
		})
		require.Error(t, err)
		assert.Equal(t, CategoryPanic, CategoryOf(err))
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailuresTotal.WithLabelValues(StageSimilarity, "panic")))
	})

	t.Run("zero value is usable", func(t *testing.T) {
		err := Instrument{}.Run(context.Background(), StageFetch, "fetch", nil, func(context.Context, tracer.Span) error {
			return nil
		})
		assert.NoError(t, err)
	})
}

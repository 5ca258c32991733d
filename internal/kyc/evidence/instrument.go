package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kycgate/internal/kyc/metrics"
	"kycgate/internal/platform/tracer"
)

// Instrument carries the observability dependencies shared by the stages.
// The zero value is usable: it logs to slog.Default and traces nothing.
type Instrument struct {
	Logger  *slog.Logger
	Tracer  tracer.Tracer
	Metrics *metrics.Metrics
}

// Log returns the configured logger or slog.Default.
func (in Instrument) Log() *slog.Logger {
	if in.Logger == nil {
		return slog.Default()
	}
	return in.Logger
}

func (in Instrument) tracer() tracer.Tracer {
	if in.Tracer == nil {
		return tracer.NewNoop()
	}
	return in.Tracer
}

// Start opens a child span, for calls made inside a stage.
func (in Instrument) Start(ctx context.Context, name string, attrs ...tracer.Attribute) (context.Context, tracer.Span) {
	return in.tracer().Start(ctx, name, attrs...)
}

// Run executes fn inside a span. A panic in fn is recovered into a
// StageError. Failures are logged at warn and counted per category.
func (in Instrument) Run(ctx context.Context, stage, spanName string, attrs []tracer.Attribute, fn func(context.Context, tracer.Span) error) (err error) {
	start := time.Now()
	ctx, span := in.tracer().Start(ctx, spanName, attrs...)

	defer func() {
		if r := recover(); r != nil {
			err = NewStageError(stage, CategoryPanic, fmt.Sprintf("recovered panic: %v", r), nil)
		}

		degraded := err != nil
		in.Metrics.ObserveStage(stage, degraded, time.Since(start).Seconds())
		if degraded {
			category := CategoryOf(err)
			in.Metrics.IncStageFailure(stage, string(category))
			in.Log().WarnContext(ctx, "evidence stage degraded",
				"stage", stage,
				"category", string(category),
				"error", err,
			)
		}
		span.SetAttributes(tracer.Bool(tracer.AttrDegraded, degraded))
		span.End(err)
	}()

	return fn(ctx, span)
}

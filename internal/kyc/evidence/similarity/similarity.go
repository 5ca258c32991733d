// Package similarity scores whether a selfie and a document photo show the
// same person by delegating to an external model.
package similarity

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"kycgate/internal/kyc/evidence"
	"kycgate/internal/kyc/evidence/fetch"
	"kycgate/internal/kyc/metrics"
	"kycgate/internal/platform/tracer"
	"kycgate/pkg/platform/circuit"
)

// FailureScore is returned for every failure.
const FailureScore = 0.0

// ImageFetcher retrieves and decodes an image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Image, error)
}

type Scorer struct {
	fetcher    ImageFetcher
	inference  Inference
	breaker    *circuit.Breaker
	min, max   float64
	instrument evidence.Instrument
}

type Option func(*Scorer)

// WithRange sets the provider output range mapped onto [0,1]. Ranges with
// max <= min are ignored.
func WithRange(min, max float64) Option {
	return func(s *Scorer) {
		if max > min {
			s.min, s.max = min, max
		}
	}
}

// WithBreaker guards inference calls. A nil breaker disables it.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Scorer) {
		s.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		s.instrument.Logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Scorer) {
		s.instrument.Tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scorer) {
		s.instrument.Metrics = m
	}
}

func New(fetcher ImageFetcher, inference Inference, opts ...Option) *Scorer {
	if inference == nil {
		inference = Unavailable{}
	}
	s := &Scorer{
		fetcher:   fetcher,
		inference: inference,
		min:       0,
		max:       1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publishBreakerState()
	return s
}

// Score returns the normalized similarity in [0,1]. Any failure, including
// an open breaker, yields FailureScore.
func (s *Scorer) Score(ctx context.Context, documentURL, selfieURL string) float64 {
	score := FailureScore
	err := s.instrument.Run(ctx, evidence.StageSimilarity, tracer.SpanSimilarity,
		[]tracer.Attribute{
			tracer.String(tracer.AttrImageDigest, tracer.Digest(selfieURL)),
		},
		func(ctx context.Context, span tracer.Span) error {
			v, err := s.score(ctx, documentURL, selfieURL)
			if err != nil {
				return err
			}
			score = v
			span.SetAttributes(tracer.Float64(tracer.AttrScore, v))
			return nil
		})
	if err != nil {
		return FailureScore
	}
	return score
}

func (s *Scorer) score(ctx context.Context, documentURL, selfieURL string) (float64, error) {
	var doc, selfie Tensor
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer evidence.RecoverPanic(evidence.StageSimilarity, &err)
		doc, err = s.tensorFor(gctx, documentURL)
		return err
	})
	g.Go(func() (err error) {
		defer evidence.RecoverPanic(evidence.StageSimilarity, &err)
		selfie, err = s.tensorFor(gctx, selfieURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if !doc.Valid() || !selfie.Valid() {
		return 0, evidence.NewStageError(evidence.StageSimilarity, evidence.CategoryBadData, "tensor shape mismatch", nil)
	}

	// Every call admitted by the breaker records an outcome, so a half-open
	// breaker always settles.
	if s.breaker != nil && !s.breaker.Allow() {
		s.publishBreakerState()
		return 0, evidence.NewStageError(evidence.StageSimilarity, evidence.CategoryCircuitOpen, "inference circuit open", nil)
	}
	value, err := s.predict(ctx, doc, selfie)
	if err != nil {
		s.recordBreaker(false)
		return 0, err
	}
	s.recordBreaker(true)
	return s.normalize(value), nil
}

func (s *Scorer) tensorFor(ctx context.Context, url string) (Tensor, error) {
	img, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return Tensor{}, err
	}
	return ToTensor(img.Decoded), nil
}

func (s *Scorer) predict(ctx context.Context, doc, selfie Tensor) (float64, error) {
	ctx, span := s.instrument.Start(ctx, tracer.SpanInferenceCall)
	outputs, err := s.inference.Predict(ctx, doc, selfie)
	if err == nil && len(outputs) == 0 {
		err = evidence.NewStageError(evidence.StageSimilarity, evidence.CategoryBadData, "empty inference output", nil)
	}
	span.End(err)
	if err != nil {
		return 0, err
	}

	v := float64(outputs[0])
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, evidence.NewStageError(evidence.StageSimilarity, evidence.CategoryBadData, fmt.Sprintf("non-finite inference output %v", v), nil)
	}
	return v, nil
}

func (s *Scorer) normalize(v float64) float64 {
	n := (v - s.min) / (s.max - s.min)
	return math.Max(0, math.Min(1, n))
}

func (s *Scorer) recordBreaker(ok bool) {
	if s.breaker == nil {
		return
	}
	var change circuit.StateChange
	if ok {
		change = s.breaker.RecordSuccess()
	} else {
		change = s.breaker.RecordFailure()
	}
	if change.Opened {
		s.instrument.Log().Warn("similarity inference circuit opened", "breaker", s.breaker.Name())
	}
	if change.Closed {
		s.instrument.Log().Info("similarity inference circuit closed", "breaker", s.breaker.Name())
	}
	s.publishBreakerState()
}

func (s *Scorer) publishBreakerState() {
	if s.breaker == nil {
		return
	}
	s.instrument.Metrics.SetBreakerState(s.breaker.State().String())
}

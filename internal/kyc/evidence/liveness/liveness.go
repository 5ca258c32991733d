// Package liveness scores how likely a selfie shows a live subject using
// image-quality heuristics.
package liveness

import (
	"context"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"kycgate/internal/kyc/evidence"
	"kycgate/internal/kyc/evidence/fetch"
	"kycgate/internal/kyc/metrics"
	"kycgate/internal/platform/tracer"
)

const (
	// FallbackScore is returned when the selfie cannot be fetched or decoded.
	FallbackScore = 0.3

	baseScore       = 0.5
	minDimension    = 400
	minAspect       = 0.5
	maxAspect       = 1.0
	edgeSampleSide  = 256
	edgeStride      = 4
	strongEdgeMean  = 24.0
	mediumEdgeMean  = 12.0
	minFileSize     = 50 << 10
	resolutionBonus = 0.1
	aspectBonus     = 0.1
	strongEdgeBonus = 0.2
	mediumEdgeBonus = 0.1
	fileSizeBonus   = 0.1
)

// ImageFetcher retrieves and decodes an image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Image, error)
}

type Scorer struct {
	fetcher    ImageFetcher
	instrument evidence.Instrument
}

type Option func(*Scorer)

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

func New(fetcher ImageFetcher, opts ...Option) *Scorer {
	s := &Scorer{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns a value in [0,1], or FallbackScore on any failure.
func (s *Scorer) Score(ctx context.Context, selfieURL string) float64 {
	score := FallbackScore
	err := s.instrument.Run(ctx, evidence.StageLiveness, tracer.SpanLiveness,
		[]tracer.Attribute{tracer.String(tracer.AttrImageDigest, tracer.Digest(selfieURL))},
		func(ctx context.Context, span tracer.Span) error {
			img, err := s.fetcher.Fetch(ctx, selfieURL)
			if err != nil {
				return err
			}
			score = ScoreImage(img.Decoded, img.Size())
			span.SetAttributes(tracer.Float64(tracer.AttrScore, score))
			return nil
		})
	if err != nil {
		return FallbackScore
	}
	return score
}

// ScoreImage applies the heuristic to a decoded image of the given encoded size.
func ScoreImage(img image.Image, encodedSize int) float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return FallbackScore
	}

	score := baseScore
	if w > minDimension && h > minDimension {
		score += resolutionBonus
	}
	if ratio := float64(w) / float64(h); ratio >= minAspect && ratio <= maxAspect {
		score += aspectBonus
	}
	switch edge := EdgeStrength(img); {
	case edge >= strongEdgeMean:
		score += strongEdgeBonus
	case edge >= mediumEdgeMean:
		score += mediumEdgeBonus
	}
	if encodedSize >= minFileSize {
		score += fileSizeBonus
	}

	return math.Max(0, math.Min(1, score))
}

// EdgeStrength is the mean greyscale gradient magnitude sampled on a
// stride-4 grid of the image fitted into 256x256.
func EdgeStrength(img image.Image) float64 {
	small := imaging.Grayscale(imaging.Fit(img, edgeSampleSide, edgeSampleSide, imaging.Box))
	b := small.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	lum := func(x, y int) float64 {
		return float64(small.Pix[y*small.Stride+x*4])
	}

	var sum float64
	var n int
	for y := 1; y < h-1; y += edgeStride {
		for x := 1; x < w-1; x += edgeStride {
			gx := (lum(x+1, y) - lum(x-1, y)) / 2
			gy := (lum(x, y+1) - lum(x, y-1)) / 2
			sum += math.Hypot(gx, gy)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

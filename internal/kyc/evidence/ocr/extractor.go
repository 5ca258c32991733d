// Package ocr turns document images into recognised text and structured
// identity fields.
package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"time"

	"kycgate/internal/kyc/evidence"
	"kycgate/internal/kyc/evidence/fetch"
	"kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/models"
	"kycgate/internal/platform/tracer"
)

// ExtractionResult is the outcome of one extraction. A failed extraction has
// empty text, zero confidence and a non-empty Error.
type ExtractionResult struct {
	Fields           models.ExtractedFields `json:"fields"`
	Text             string                 `json:"text"`
	Confidence       float64                `json:"confidence"`
	ProcessingTimeMs int64                  `json:"processing_time_ms"`
	Error            string                 `json:"error,omitempty"`
}

// Failed reports whether the extraction degraded.
func (r ExtractionResult) Failed() bool {
	return r.Error != ""
}

// ImageFetcher retrieves and decodes an image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Image, error)
}

// ResultCache stores successful extraction results. Get returns
// sentinel.ErrNotFound on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*ExtractionResult, error)
	Set(ctx context.Context, key string, result *ExtractionResult) error
}

// Extractor runs fetch, preprocess, recognise and field parsing.
type Extractor struct {
	fetcher    ImageFetcher
	recognizer Recognizer
	cache      ResultCache
	options    RecognizeOptions
	instrument evidence.Instrument
}

type Option func(*Extractor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.instrument.Logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(e *Extractor) {
		e.instrument.Tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Extractor) {
		e.instrument.Metrics = m
	}
}

// WithCache enables result caching. A nil cache disables it.
func WithCache(c ResultCache) Option {
	return func(e *Extractor) {
		e.cache = c
	}
}

func NewExtractor(fetcher ImageFetcher, recognizer Recognizer, opts ...Option) *Extractor {
	if recognizer == nil {
		recognizer = Unavailable{}
	}
	e := &Extractor{
		fetcher:    fetcher,
		recognizer: recognizer,
		options:    DefaultRecognizeOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CacheKey is the cache key for an image URL.
func CacheKey(imageURL string) string {
	sum := sha256.Sum256([]byte(imageURL))
	return hex.EncodeToString(sum[:])
}

// Extract never returns an error and never panics; failures are reported in
// ExtractionResult.Error.
func (e *Extractor) Extract(ctx context.Context, imageURL string) ExtractionResult {
	start := time.Now()
	var result ExtractionResult

	err := e.instrument.Run(ctx, evidence.StageOCR, tracer.SpanExtract,
		[]tracer.Attribute{tracer.String(tracer.AttrImageDigest, tracer.Digest(imageURL))},
		func(ctx context.Context, span tracer.Span) error {
			key := CacheKey(imageURL)
			if cached, ok := e.lookup(ctx, key); ok {
				span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, true))
				result = *cached
				return nil
			}

			r, err := e.extract(ctx, imageURL)
			if err != nil {
				return err
			}
			result = r
			e.store(ctx, key, &r)
			span.SetAttributes(tracer.Float64(tracer.AttrScore, r.Confidence))
			return nil
		})
	if err != nil {
		result = ExtractionResult{Error: err.Error()}
	}
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result
}

func (e *Extractor) extract(ctx context.Context, imageURL string) (ExtractionResult, error) {
	img, err := e.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return ExtractionResult{}, err
	}

	prepared, err := Preprocess(img.Decoded)
	if err != nil {
		return ExtractionResult{}, evidence.NewStageError(evidence.StageOCR, evidence.CategoryInternal, "failed to encode preprocessed image", err)
	}

	rctx, span := e.instrument.Start(ctx, tracer.SpanRecognizerCall)
	rec, err := e.recognizer.Recognize(rctx, prepared, e.options)
	span.End(err)
	if err != nil {
		return ExtractionResult{}, err
	}

	return ExtractionResult{
		Fields:     ParseFields(rec.Text),
		Text:       rec.Text,
		Confidence: clampConfidence(rec.Confidence),
	}, nil
}

func (e *Extractor) lookup(ctx context.Context, key string) (*ExtractionResult, bool) {
	if e.cache == nil {
		return nil, false
	}
	cached, err := e.cache.Get(ctx, key)
	if err != nil || cached == nil || cached.Failed() {
		e.instrument.Metrics.RecordCacheMiss()
		return nil, false
	}
	e.instrument.Metrics.RecordCacheHit()
	return cached, true
}

func (e *Extractor) store(ctx context.Context, key string, r *ExtractionResult) {
	if e.cache == nil || r.Failed() {
		return
	}
	_ = e.cache.Set(ctx, key, r)
}

func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}

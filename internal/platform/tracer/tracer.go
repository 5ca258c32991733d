// Package tracer is a small tracing facade over OpenTelemetry.
//
// Services depend on Tracer and Span only. OTelTracer adapts the global
// provider; NoopTracer is used in tests and when tracing is off.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records the value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Digest returns a short SHA-256 prefix so image URLs and document numbers
// can be correlated across spans without being exported.
func Digest(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}

// Span names.
const (
	SpanSubmission     = "kyc.submission"
	SpanExtract        = "kyc.evidence.extract"
	SpanLiveness       = "kyc.evidence.liveness"
	SpanSimilarity     = "kyc.evidence.similarity"
	SpanReview         = "kyc.review"
	SpanInferenceCall  = "kyc.similarity.inference"
	SpanRecognizerCall = "kyc.ocr.recognize"
)

// Attribute keys.
const (
	AttrUserID           = "user.id"
	AttrRecordID         = "record.id"
	AttrVerificationType = "verification.type"
	AttrImageDigest      = "image.digest"
	AttrCacheHit         = "cache.hit"
	AttrDegraded         = "stage.degraded"
	AttrScore            = "stage.score"
	AttrDecision         = "review.decision"
)

// Package evidence holds what the evidence stages share: the failure
// taxonomy and the HTTP client seam.
//
// Stage failures never reach callers. Each stage turns a StageError into its
// documented fallback value; the error only feeds logs, spans and metrics.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Category classifies a stage failure.
type Category string

const (
	CategoryTimeout      Category = "timeout"
	CategoryUnavailable  Category = "unavailable"
	CategoryBadStatus    Category = "bad_status"
	CategoryTooLarge     Category = "too_large"
	CategoryDecode       Category = "decode"
	CategoryBadData      Category = "bad_data"
	CategoryCircuitOpen  Category = "circuit_open"
	CategoryUnconfigured Category = "unconfigured"
	CategoryPanic        Category = "panic"
	CategoryInternal     Category = "internal"
)

// Stage names.
const (
	StageFetch      = "fetch"
	StageOCR        = "ocr"
	StageLiveness   = "liveness"
	StageSimilarity = "similarity"
)

// StageError is a categorized, transient evidence failure.
type StageError struct {
	Stage      string
	Category   Category
	Message    string
	Underlying error
}

func (e *StageError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Stage, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Stage, e.Category, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Underlying
}

func NewStageError(stage string, category Category, message string, underlying error) *StageError {
	return &StageError{
		Stage:      stage,
		Category:   category,
		Message:    message,
		Underlying: underlying,
	}
}

// CategoryOf extracts the category, defaulting to internal for foreign errors.
func CategoryOf(err error) Category {
	var se *StageError
	if errors.As(err, &se) {
		return se.Category
	}
	return CategoryInternal
}

// RecoverPanic turns a panic in the calling goroutine into a CategoryPanic
// StageError stored in *err. It must be deferred directly. Instrument.Run only
// covers its own goroutine, so goroutines started inside a stage defer this.
func RecoverPanic(stage string, err *error) {
	if r := recover(); r != nil {
		*err = NewStageError(stage, CategoryPanic, fmt.Sprintf("recovered panic: %v", r), nil)
	}
}

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IsTimeout reports whether err (or ctx) indicates an exceeded deadline.
func IsTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

package validation

import (
	"fmt"

	dErrors "kycgate/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// Evidence travels by URL, so JSON bodies stay small.
	MaxBodySize = 64 * 1024
)

// Slice element count limits
const (
	// MaxBulkReviewItems is the maximum number of decisions per bulk review.
	MaxBulkReviewItems = 100
)

// String element length limits
const (
	// MaxURLLength is the maximum length of an evidence URL.
	MaxURLLength = 2048

	// MaxNotesLength is the maximum length of reviewer notes.
	MaxNotesLength = 2000
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

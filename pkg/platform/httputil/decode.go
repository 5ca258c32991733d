package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/validation"
	"kycgate/pkg/requestcontext"
)

// DecodeJSON reads exactly one JSON object of type T from the request body.
// The body is capped at validation.MaxBodySize; unknown fields and trailing
// data are rejected. On failure it writes a bad_request response and returns
// false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := decodeStrict(w, r, &req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}

func decodeStrict(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, validation.MaxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dErrors.Newf(dErrors.CodeBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return dErrors.New(dErrors.CodeBadRequest, "request body is required")
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return dErrors.New(dErrors.CodeBadRequest, "request body must hold a single JSON object")
	}
	return nil
}

// Sanitizable request types trim and clean their fields.
type Sanitizable interface {
	Sanitize()
}

// Normalizable request types canonicalize values such as enum casing.
type Normalizable interface {
	Normalize()
}

// Validatable request types check their own invariants.
type Validatable interface {
	Validate() error
}

// PrepareRequest runs Sanitize, Normalize and Validate, in that order, for
// whichever of them req implements. Errors without a domain code become
// validation errors.
func PrepareRequest(req any) error {
	if s, ok := req.(Sanitizable); ok {
		s.Sanitize()
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}
	err := v.Validate()
	if err == nil {
		return nil
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.New(dErrors.CodeValidation, err.Error())
}

// DecodeAndPrepare decodes the body and prepares it with PrepareRequest.
//
//	req, ok := httputil.DecodeAndPrepare[models.SubmitRequest](w, r, h.logger)
//	if !ok {
//		return
//	}
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger)
	if !ok {
		return nil, false
	}
	if err := PrepareRequest(req); err != nil {
		logger.WarnContext(r.Context(), "invalid request",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
			"request_type", fmt.Sprintf("%T", req),
		)
		WriteError(w, err)
		return nil, false
	}
	return req, true
}

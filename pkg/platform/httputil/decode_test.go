package httputil_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/kyc/models"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/platform/validation"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/users/u/verifications", strings.NewReader(body))
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeJSON(t *testing.T) {
	t.Run("flattened evidence decodes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, ok := httputil.DecodeJSON[models.SubmitRequest](w, post(
			`{"verification_type":"selfie","selfie_image_url":"https://images.example.com/s.jpg"}`), discard)

		require.True(t, ok)
		assert.Equal(t, "selfie", req.VerificationType)
		assert.Equal(t, "https://images.example.com/s.jpg", req.SelfieImageURL)
	})

	cases := []struct {
		name        string
		body        string
		description string
	}{
		{"malformed json", `{"verification_type":`, "invalid request body"},
		{"empty body", ``, "request body is required"},
		{"unknown field", `{"verification_type":"selfie","selfie_url":"https://x.example/s.jpg"}`, "unknown field"},
		{"trailing object", `{"verification_type":"selfie"}{"verification_type":"address"}`, "single JSON object"},
		{"oversized body", `{"address_line":"` + strings.Repeat("a", validation.MaxBodySize) + `"}`, "exceeds"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, ok := httputil.DecodeJSON[models.SubmitRequest](w, post(tc.body), discard)

			assert.False(t, ok)
			assert.Nil(t, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := errorBody(t, w)
			assert.Equal(t, "bad_request", resp.Error)
			assert.Contains(t, resp.ErrorDescription, tc.description)
		})
	}

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := httputil.DecodeJSON[models.ReviewRequest](w, post("{\"decision\":\"verified\"}\n  "), discard)
		assert.True(t, ok)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("submission is trimmed and lower-cased before validation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, ok := httputil.DecodeAndPrepare[models.SubmitRequest](w, post(
			`{"verification_type":" ADDRESS ","address_line":" 12 Main Street ","city":"Springfield","country":"US"}`), discard)

		require.True(t, ok, w.Body.String())
		assert.Equal(t, "address", req.VerificationType)
		assert.Equal(t, "12 Main Street", req.AddressLine)
	})

	t.Run("missing evidence for the type is a validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, ok := httputil.DecodeAndPrepare[models.SubmitRequest](w, post(`{"verification_type":"selfie"}`), discard)

		assert.False(t, ok)
		assert.Nil(t, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", errorBody(t, w).Error)
	})

	t.Run("empty bulk batch is a validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := httputil.DecodeAndPrepare[models.BulkReviewRequest](w, post(`{"items":[]}`), discard)

		assert.False(t, ok)
		assert.Equal(t, "validation_error", errorBody(t, w).Error)
	})
}

type plainErrRequest struct {
	Decision string `json:"decision"`
}

func (r *plainErrRequest) Validate() error {
	if r.Decision == "" {
		return errors.New("decision is required")
	}
	return nil
}

type badInputRequest struct{}

func (badInputRequest) Validate() error {
	return dErrors.New(dErrors.CodeInvalidInput, "record ID is malformed")
}

func TestPrepareRequest(t *testing.T) {
	t.Run("plain errors become validation errors", func(t *testing.T) {
		err := httputil.PrepareRequest(&plainErrRequest{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.ErrorContains(t, err, "decision is required")
	})

	t.Run("domain codes are preserved", func(t *testing.T) {
		err := httputil.PrepareRequest(badInputRequest{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("types without hooks pass", func(t *testing.T) {
		assert.NoError(t, httputil.PrepareRequest(&struct{ Name string }{}))
	})

	t.Run("review decision is normalized", func(t *testing.T) {
		req := &models.ReviewRequest{Decision: " Verified "}
		require.NoError(t, httputil.PrepareRequest(req))
		assert.Equal(t, "verified", req.Decision)
	})
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "kycgate/pkg/domain-errors"
)

func prepare(r interface {
	Sanitize()
	Validate() error
}) error {
	r.Sanitize()
	if n, ok := r.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	return r.Validate()
}

func TestSubmitRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr string
	}{
		{
			name: "national id with document image",
			req:  SubmitRequest{VerificationType: " National_ID ", Evidence: Evidence{DocumentImageURL: "https://cdn.example.com/id.jpg"}},
		},
		{
			name:    "missing type",
			req:     SubmitRequest{},
			wantErr: "verification_type is required",
		},
		{
			name:    "unknown type",
			req:     SubmitRequest{VerificationType: "utility_bill"},
			wantErr: "unsupported verification_type",
		},
		{
			name:    "passport without image",
			req:     SubmitRequest{VerificationType: "passport", Evidence: Evidence{DocumentNumber: "X1"}},
			wantErr: "document_image_url is required for passport",
		},
		{
			name:    "address without city",
			req:     SubmitRequest{VerificationType: "address", Evidence: Evidence{AddressLine: "1 Main St", Country: "TR"}},
			wantErr: "city is required",
		},
		{
			name: "complete address",
			req:  SubmitRequest{VerificationType: "address", Evidence: Evidence{AddressLine: "1 Main St", City: "Izmir", Country: "TR"}},
		},
		{
			name:    "selfie without image",
			req:     SubmitRequest{VerificationType: "selfie"},
			wantErr: "selfie_image_url is required",
		},
		{
			name:    "non-http image url",
			req:     SubmitRequest{VerificationType: "selfie", Evidence: Evidence{SelfieImageURL: "file:///etc/passwd"}},
			wantErr: "selfie_image_url must be an absolute http(s) url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := prepare(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReviewRequestValidation(t *testing.T) {
	req := ReviewRequest{Decision: " Verified ", Notes: ptr("  ")}
	assert.NoError(t, prepare(&req))
	assert.Equal(t, "verified", req.Decision)
	assert.Nil(t, req.Notes)

	assert.ErrorContains(t, prepare(&ReviewRequest{}), "decision is required")
}

func TestBulkReviewRequestValidation(t *testing.T) {
	assert.ErrorContains(t, prepare(&BulkReviewRequest{}), "items")

	items := make([]BulkReviewItem, 101)
	assert.ErrorContains(t, prepare(&BulkReviewRequest{Items: items}), "too many items")

	ok := BulkReviewRequest{Items: []BulkReviewItem{{RecordID: " abc ", Decision: "REJECTED"}}}
	assert.NoError(t, prepare(&ok))
	assert.Equal(t, "abc", ok.Items[0].RecordID)
	assert.Equal(t, "rejected", ok.Items[0].Decision)
}

package models

import id "kycgate/pkg/domain"

// VerificationList is the body of GET /users/{userID}/verifications.
type VerificationList struct {
	UserID        id.UserID             `json:"user_id"`
	Verifications []*VerificationRecord `json:"verifications"`
	Total         int                   `json:"total"`
}

// ItemError describes why one bulk review item failed.
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkReviewResult is the outcome of one bulk review item.
type BulkReviewResult struct {
	RecordID string              `json:"record_id"`
	Success  bool                `json:"success"`
	Record   *VerificationRecord `json:"record,omitempty"`
	Error    *ItemError          `json:"error,omitempty"`
}

// BulkReviewResponse reports every item of a bulk review in request order.
type BulkReviewResponse struct {
	Results   []BulkReviewResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// NewBulkReviewResponse counts successes and failures.
func NewBulkReviewResponse(results []BulkReviewResult) BulkReviewResponse {
	resp := BulkReviewResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

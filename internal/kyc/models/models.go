package models

import (
	"strings"
	"time"

	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
)

// Evidence is what the user submits. Empty strings mean "not provided".
type Evidence struct {
	DocumentNumber   string `json:"document_number,omitempty"`
	DocumentImageURL string `json:"document_image_url,omitempty"`
	AddressLine      string `json:"address_line,omitempty"`
	City             string `json:"city,omitempty"`
	District         string `json:"district,omitempty"`
	Country          string `json:"country,omitempty"`
	SelfieImageURL   string `json:"selfie_image_url,omitempty"`
}

// ExtractedFields are the structured fields recognized on a document image.
type ExtractedFields struct {
	Name           string `json:"name,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	DOB            string `json:"dob,omitempty"`
	Address        string `json:"address,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
}

// DerivedEvidence is the combined output of the evidence stages for one
// submission. ExtractedText and OCRError are diagnostics for logs and are not
// part of the record.
type DerivedEvidence struct {
	Extracted               ExtractedFields
	ExtractedText           string
	OCRConfidence           float64
	OCRError                string
	LivenessScore           *float64
	IdentitySimilarityScore *float64
}

// VerificationRecord is one evidentiary submission.
//
// Exactly one record exists per (UserID, Type). Resubmitting overwrites the
// evidence, derived and review fields in place and keeps the ID.
type VerificationRecord struct {
	ID     id.RecordID      `json:"id"`
	UserID id.UserID        `json:"user_id"`
	Type   VerificationType `json:"verification_type"`

	Evidence

	ExtractedFields         ExtractedFields `json:"extracted_fields"`
	OCRConfidence           float64         `json:"ocr_confidence"`
	LivenessScore           *float64        `json:"liveness_score,omitempty"`
	IdentitySimilarityScore *float64        `json:"identity_similarity_score,omitempty"`

	Status     Status     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Notes      *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVerificationRecord builds a pending record with invariant checks.
func NewVerificationRecord(recordID id.RecordID, userID id.UserID, t VerificationType, ev Evidence, derived DerivedEvidence, now time.Time) (*VerificationRecord, error) {
	if recordID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "record ID required")
	}
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user ID required")
	}
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid verification type")
	}
	if now.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "creation time required")
	}
	r := &VerificationRecord{
		ID:        recordID,
		UserID:    userID,
		Type:      t,
		Evidence:  ev,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.applyDerived(derived)
	return r, nil
}

// Resubmit replaces evidence and derived fields, reopening review.
func (r *VerificationRecord) Resubmit(ev Evidence, derived DerivedEvidence, now time.Time) {
	r.Evidence = ev
	r.applyDerived(derived)
	r.Status = StatusPending
	r.ReviewedBy = nil
	r.ReviewedAt = nil
	r.Notes = nil
	r.UpdatedAt = now
}

// ApplyReview records a reviewer decision. A reviewer may amend an earlier
// decision; the last write wins. The record is untouched on error.
func (r *VerificationRecord) ApplyReview(reviewerID string, decision Decision, notes *string, now time.Time) error {
	if err := ValidateDecision(decision, notes); err != nil {
		return err
	}
	reviewer := reviewerID
	reviewedAt := now
	r.Status = decision.Status()
	r.ReviewedBy = &reviewer
	r.ReviewedAt = &reviewedAt
	r.Notes = trimmedOrNil(notes)
	r.UpdatedAt = now
	return nil
}

// ValidateDecision enforces the decision set and that rejections carry a reason.
func ValidateDecision(decision Decision, notes *string) error {
	if !decision.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "decision must be one of [verified rejected]")
	}
	if decision == DecisionRejected && trimmedOrNil(notes) == nil {
		return dErrors.New(dErrors.CodeValidation, "notes are required when rejecting a verification")
	}
	return nil
}

// Clone returns a deep copy so stores never share pointers with callers.
func (r *VerificationRecord) Clone() *VerificationRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.LivenessScore = clonePtr(r.LivenessScore)
	c.IdentitySimilarityScore = clonePtr(r.IdentitySimilarityScore)
	c.ReviewedBy = clonePtr(r.ReviewedBy)
	c.ReviewedAt = clonePtr(r.ReviewedAt)
	c.Notes = clonePtr(r.Notes)
	return &c
}

func (r *VerificationRecord) applyDerived(d DerivedEvidence) {
	r.ExtractedFields = d.Extracted
	r.OCRConfidence = d.OCRConfidence
	r.LivenessScore = clonePtr(d.LivenessScore)
	r.IdentitySimilarityScore = clonePtr(d.IdentitySimilarityScore)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

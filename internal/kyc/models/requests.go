package models

import (
	"fmt"
	"net/url"
	"strings"

	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/validation"
	s "kycgate/pkg/string"
)

// SubmitRequest creates (or overwrites) the record for a verification type.
type SubmitRequest struct {
	VerificationType string `json:"verification_type" validate:"required"`
	Evidence
}

func (r *SubmitRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.VerificationType)
	r.Evidence.sanitize()
}

func (r *SubmitRequest) Normalize() {
	if r == nil {
		return
	}
	r.VerificationType = strings.ToLower(r.VerificationType)
}

func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	t, err := ParseVerificationType(r.VerificationType)
	if err != nil {
		return err
	}
	return r.Evidence.ValidateFor(t)
}

// ResubmitRequest replaces the evidence of an existing record. The type may be
// repeated for clarity but cannot change.
type ResubmitRequest struct {
	VerificationType string `json:"verification_type,omitempty"`
	Evidence
}

func (r *ResubmitRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.VerificationType)
	r.VerificationType = strings.ToLower(r.VerificationType)
	r.Evidence.sanitize()
}

func (r *ResubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.VerificationType != "" {
		if _, err := ParseVerificationType(r.VerificationType); err != nil {
			return err
		}
	}
	return nil
}

// ReviewRequest is a reviewer decision on one record.
type ReviewRequest struct {
	Decision string  `json:"decision" validate:"required"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *ReviewRequest) Sanitize() {
	if r == nil {
		return
	}
	s.TrimStrings(&r.Decision)
	r.Decision = strings.ToLower(r.Decision)
	r.Notes = s.TrimPtr(r.Notes)
}

func (r *ReviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.Notes != nil {
		return validation.CheckStringLength("notes", *r.Notes, validation.MaxNotesLength)
	}
	return nil
}

// BulkReviewItem is one decision inside a bulk review.
type BulkReviewItem struct {
	RecordID string  `json:"record_id"`
	Decision string  `json:"decision"`
	Notes    *string `json:"notes,omitempty"`
}

// BulkReviewRequest carries independent review decisions.
type BulkReviewRequest struct {
	Items []BulkReviewItem `json:"items" validate:"required,min=1"`
}

func (r *BulkReviewRequest) Sanitize() {
	if r == nil {
		return
	}
	for i := range r.Items {
		s.TrimStrings(&r.Items[i].RecordID, &r.Items[i].Decision)
		r.Items[i].Decision = strings.ToLower(r.Items[i].Decision)
		r.Items[i].Notes = s.TrimPtr(r.Items[i].Notes)
	}
}

// Validate checks only the batch shape. Per-item problems are reported per item.
func (r *BulkReviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return validation.CheckSliceCount("items", len(r.Items), validation.MaxBulkReviewItems)
}

func (e *Evidence) sanitize() {
	s.TrimStrings(&e.DocumentNumber, &e.DocumentImageURL, &e.AddressLine,
		&e.City, &e.District, &e.Country, &e.SelfieImageURL)
}

// ValidateFor checks the evidence a verification type requires.
func (e Evidence) ValidateFor(t VerificationType) error {
	switch {
	case t.IsIdentityDocument():
		if e.DocumentImageURL == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("document_image_url is required for %s", t))
		}
		if err := validation.CheckStringLength("document_number", e.DocumentNumber, 64); err != nil {
			return err
		}
	case t == TypeAddress:
		if e.AddressLine == "" {
			return dErrors.New(dErrors.CodeValidation, "address_line is required for address")
		}
		if e.City == "" {
			return dErrors.New(dErrors.CodeValidation, "city is required for address")
		}
		if e.Country == "" {
			return dErrors.New(dErrors.CodeValidation, "country is required for address")
		}
	case t == TypeSelfie:
		if e.SelfieImageURL == "" {
			return dErrors.New(dErrors.CodeValidation, "selfie_image_url is required for selfie")
		}
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported verification_type %q", t))
	}

	if err := checkImageURL("document_image_url", e.DocumentImageURL); err != nil {
		return err
	}
	return checkImageURL("selfie_image_url", e.SelfieImageURL)
}

func checkImageURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	if err := validation.CheckStringLength(field, raw, validation.MaxURLLength); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return dErrors.New(dErrors.CodeValidation, field+" must be an absolute http(s) url")
	}
	return nil
}

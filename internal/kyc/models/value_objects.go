package models

import (
	"fmt"
	"strings"

	dErrors "kycgate/pkg/domain-errors"
)

// VerificationType names the requirement a record provides evidence for.
type VerificationType string

const (
	TypeNationalID     VerificationType = "national_id"
	TypePassport       VerificationType = "passport"
	TypeDrivingLicense VerificationType = "driving_license"
	TypeAddress        VerificationType = "address"
	TypeSelfie         VerificationType = "selfie"
)

// ValidTypes is the single source of truth for supported verification types.
var ValidTypes = map[VerificationType]bool{
	TypeNationalID:     true,
	TypePassport:       true,
	TypeDrivingLicense: true,
	TypeAddress:        true,
	TypeSelfie:         true,
}

func (t VerificationType) IsValid() bool {
	return ValidTypes[t]
}

// IsIdentityDocument reports whether the type is evidenced by a document image.
func (t VerificationType) IsIdentityDocument() bool {
	return t == TypeNationalID || t == TypePassport || t == TypeDrivingLicense
}

func (t VerificationType) String() string { return string(t) }

// ParseVerificationType validates a wire value.
func ParseVerificationType(s string) (VerificationType, error) {
	t := VerificationType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported verification_type %q", s))
	}
	return t, nil
}

// ParseRequiredTypes converts configured type names, dropping duplicates.
func ParseRequiredTypes(names []string) ([]VerificationType, error) {
	seen := make(map[VerificationType]struct{}, len(names))
	out := make([]VerificationType, 0, len(names))
	for _, n := range names {
		t, err := ParseVerificationType(n)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one required verification type is needed")
	}
	return out, nil
}

// DefaultRequiredTypes is the required set used when none is configured.
func DefaultRequiredTypes() []VerificationType {
	return []VerificationType{TypeNationalID, TypeSelfie, TypeAddress}
}

// Status is the review state of a single record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusVerified || s == StatusRejected
}

// Decision is a reviewer's verdict. Only terminal statuses are decisions.
type Decision string

const (
	DecisionVerified Decision = "verified"
	DecisionRejected Decision = "rejected"
)

func (d Decision) IsValid() bool {
	return d == DecisionVerified || d == DecisionRejected
}

// Status maps the decision onto the record status it produces.
func (d Decision) Status() Status {
	return Status(d)
}

// OverallStatus is the user-level compliance status derived from records.
type OverallStatus string

const (
	OverallUnverified OverallStatus = "unverified"
	OverallPending    OverallStatus = "pending"
	OverallVerified   OverallStatus = "verified"
	OverallRejected   OverallStatus = "rejected"
)

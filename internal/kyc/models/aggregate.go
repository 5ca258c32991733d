package models

import id "kycgate/pkg/domain"

// KycAggregate is the user-level status derived from the current record set.
// It is never stored.
type KycAggregate struct {
	UserID         id.UserID                `json:"user_id"`
	OverallStatus  OverallStatus            `json:"overall_status"`
	RequiredTypes  []VerificationType       `json:"required_types"`
	Requirements   []Requirement            `json:"requirements"`
	CountsByStatus map[Status]int           `json:"counts_by_status"`
	CountsByType   map[VerificationType]int `json:"counts_by_type"`
	TotalRecords   int                      `json:"total_records"`
}

// Requirement shows which record decided a required type.
type Requirement struct {
	Type      VerificationType `json:"verification_type"`
	Satisfied bool             `json:"satisfied"`
	RecordID  *id.RecordID     `json:"record_id,omitempty"`
	Status    *Status          `json:"status,omitempty"`
}

package testutil

import (
	"time"

	"github.com/google/uuid"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// TestIDs provides convenient pre-generated IDs for tests.
// Use these for deterministic test data.
var TestIDs = struct {
	UserID1   id.UserID
	UserID2   id.UserID
	RecordID1 id.RecordID
	RecordID2 id.RecordID
	RecordID3 id.RecordID
}{
	UserID1:   id.UserID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	UserID2:   id.UserID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
	RecordID1: id.RecordID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	RecordID2: id.RecordID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
	RecordID3: id.RecordID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000003")),
}

// FixedTime is a microsecond-precision instant that survives a Postgres round trip.
var FixedTime = time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)

// RecordBuilder provides a fluent interface for building verification records.
type RecordBuilder struct {
	record *models.VerificationRecord
}

// NewRecordBuilder creates a pending national ID record with sensible defaults.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		record: &models.VerificationRecord{
			ID:     id.NewRecordID(),
			UserID: TestIDs.UserID1,
			Type:   models.TypeNationalID,
			Evidence: models.Evidence{
				DocumentNumber:   "AB1234567",
				DocumentImageURL: "https://images.example.com/id-front.jpg",
			},
			Status:    models.StatusPending,
			CreatedAt: FixedTime,
			UpdatedAt: FixedTime,
		},
	}
}

func (b *RecordBuilder) WithID(recordID id.RecordID) *RecordBuilder {
	b.record.ID = recordID
	return b
}

func (b *RecordBuilder) WithUserID(userID id.UserID) *RecordBuilder {
	b.record.UserID = userID
	return b
}

// WithType sets the type and replaces the evidence with a valid set for it.
func (b *RecordBuilder) WithType(t models.VerificationType) *RecordBuilder {
	b.record.Type = t
	b.record.Evidence = ValidEvidence(t)
	return b
}

func (b *RecordBuilder) WithStatus(status models.Status) *RecordBuilder {
	b.record.Status = status
	return b
}

func (b *RecordBuilder) WithEvidence(ev models.Evidence) *RecordBuilder {
	b.record.Evidence = ev
	return b
}

// WithTimes sets both timestamps.
func (b *RecordBuilder) WithTimes(created, updated time.Time) *RecordBuilder {
	b.record.CreatedAt = created
	b.record.UpdatedAt = updated
	return b
}

// Reviewed marks the record as decided by reviewer at t.
func (b *RecordBuilder) Reviewed(decision models.Decision, reviewer string, notes string, t time.Time) *RecordBuilder {
	b.record.Status = decision.Status()
	b.record.ReviewedBy = &reviewer
	b.record.ReviewedAt = &t
	if notes != "" {
		b.record.Notes = &notes
	}
	b.record.UpdatedAt = t
	return b
}

func (b *RecordBuilder) Build() *models.VerificationRecord {
	return b.record.Clone()
}

// ValidEvidence returns evidence that satisfies the per-type rules.
func ValidEvidence(t models.VerificationType) models.Evidence {
	switch t {
	case models.TypeAddress:
		return models.Evidence{
			AddressLine: "12 Main Street",
			City:        "Springfield",
			District:    "Central",
			Country:     "US",
		}
	case models.TypeSelfie:
		return models.Evidence{SelfieImageURL: "https://images.example.com/selfie.jpg"}
	default:
		return models.Evidence{
			DocumentNumber:   "AB1234567",
			DocumentImageURL: "https://images.example.com/id-front.jpg",
		}
	}
}

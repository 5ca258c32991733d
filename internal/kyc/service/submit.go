package service

import (
	"context"
	"errors"
	"fmt"

	"kycgate/internal/kyc/aggregate"
	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/requestcontext"
)

const (
	kindSubmit   = "submit"
	kindResubmit = "resubmit"
)

// Submit records evidence for a verification type. When the user already has
// a record of that type it is overwritten in place and keeps its ID.
func (s *Service) Submit(ctx context.Context, userID id.UserID, t models.VerificationType, ev models.Evidence) (*models.VerificationRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := ev.ValidateFor(t); err != nil {
		return nil, err
	}

	derived, err := s.deriveEvidence(ctx, userID, t, ev)
	if err != nil {
		return nil, err
	}

	record, overwritten, err := s.createOrOverwrite(ctx, userID, t, ev, derived)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist verification",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID.String(),
			"verification_type", t.String(),
			"error", err,
		)
		return nil, err
	}
	s.metrics.IncSubmission(t.String(), kindSubmit)
	s.logger.InfoContext(ctx, "verification submitted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
		"record_id", record.ID.String(),
		"verification_type", t.String(),
		"overwritten", overwritten,
	)
	return record, nil
}

// Resubmit replaces the evidence of an existing record and reopens review.
// A non-empty t must match the record's type.
func (s *Service) Resubmit(ctx context.Context, userID id.UserID, recordID id.RecordID, t models.VerificationType, ev models.Evidence) (*models.VerificationRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if recordID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "record ID required")
	}

	existing, err := s.store.FindByID(ctx, recordID)
	if err != nil {
		return nil, translateStoreError(err, "load verification record")
	}
	// Another user's record is reported as missing.
	if existing.UserID != userID {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification record not found")
	}
	if t != "" && t != existing.Type {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("verification_type cannot change on resubmission (record is %s)", existing.Type))
	}
	if err := ev.ValidateFor(existing.Type); err != nil {
		return nil, err
	}

	derived, err := s.deriveEvidence(ctx, userID, existing.Type, ev)
	if err != nil {
		return nil, err
	}
	record, err := s.overwrite(ctx, recordID, ev, derived)
	if err != nil {
		return nil, err
	}
	s.metrics.IncSubmission(record.Type.String(), kindResubmit)
	s.logger.InfoContext(ctx, "verification resubmitted",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
		"record_id", record.ID.String(),
		"verification_type", record.Type.String(),
	)
	return record, nil
}

// GetUserVerifications returns the user's records ordered by creation time.
func (s *Service) GetUserVerifications(ctx context.Context, userID id.UserID) ([]*models.VerificationRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, translateStoreError(err, "list verifications")
	}
	return records, nil
}

// GetKycStatus recomputes the user's aggregate from their current records.
func (s *Service) GetKycStatus(ctx context.Context, userID id.UserID) (*models.KycAggregate, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, translateStoreError(err, "load verifications")
	}
	agg := aggregate.Aggregate(userID, records, s.requiredTypes)
	return &agg, nil
}

func (s *Service) deriveEvidence(ctx context.Context, userID id.UserID, t models.VerificationType, ev models.Evidence) (models.DerivedEvidence, error) {
	var documentURL string
	if t == models.TypeSelfie {
		var err error
		if documentURL, err = s.documentImageFor(ctx, userID); err != nil {
			return models.DerivedEvidence{}, err
		}
	}
	return s.collectEvidence(ctx, userID, t, ev, documentURL), nil
}

func (s *Service) createOrOverwrite(ctx context.Context, userID id.UserID, t models.VerificationType, ev models.Evidence, derived models.DerivedEvidence) (*models.VerificationRecord, bool, error) {
	existing, err := s.store.FindByUserAndType(ctx, userID, t)
	if err == nil {
		record, err := s.overwrite(ctx, existing.ID, ev, derived)
		return record, true, err
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, translateStoreError(err, "load verification record")
	}

	record, err := models.NewVerificationRecord(id.NewRecordID(), userID, t, ev, derived, requestcontext.Now(ctx))
	if err != nil {
		return nil, false, err
	}
	err = s.store.Create(ctx, record)
	if errors.Is(err, sentinel.ErrConflict) {
		// A concurrent submission of the same type created it first.
		existing, err = s.store.FindByUserAndType(ctx, userID, t)
		if err != nil {
			return nil, false, translateStoreError(err, "load verification record")
		}
		record, err = s.overwrite(ctx, existing.ID, ev, derived)
		return record, true, err
	}
	if err != nil {
		return nil, false, translateStoreError(err, "create verification record")
	}
	return record, false, nil
}

func (s *Service) overwrite(ctx context.Context, recordID id.RecordID, ev models.Evidence, derived models.DerivedEvidence) (*models.VerificationRecord, error) {
	now := requestcontext.Now(ctx)
	record, err := s.store.Update(ctx, recordID, func(r *models.VerificationRecord) error {
		r.Resubmit(ev, derived, now)
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "update verification record")
	}
	return record, nil
}

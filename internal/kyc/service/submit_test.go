package service

import (
	"context"
	"errors"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"kycgate/internal/kyc/evidence/liveness"
	"kycgate/internal/kyc/evidence/ocr"
	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/store"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil"
)

// applyPatch emulates a store Update by running the patch on a copy of current.
func applyPatch(current *models.VerificationRecord) func(context.Context, id.RecordID, store.PatchFunc) (*models.VerificationRecord, error) {
	return func(_ context.Context, _ id.RecordID, patch store.PatchFunc) (*models.VerificationRecord, error) {
		working := current.Clone()
		if err := patch(working); err != nil {
			return nil, err
		}
		return working, nil
	}
}

func (s *ServiceSuite) TestSubmit_RunsStagesPerType() {
	userID := testutil.TestIDs.UserID1

	s.Run("address runs no evidence stage", func() {
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeAddress).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		record, err := s.service.Submit(s.ctx, userID, models.TypeAddress, testutil.ValidEvidence(models.TypeAddress))
		s.Require().NoError(err)
		s.Equal(models.StatusPending, record.Status)
		s.Nil(record.LivenessScore)
		s.Nil(record.IdentitySimilarityScore)
		s.Equal(testutil.FixedTime, record.CreatedAt)
	})

	s.Run("identity document runs extraction", func() {
		ev := testutil.ValidEvidence(models.TypeNationalID)
		s.extractor.EXPECT().Extract(gomock.Any(), ev.DocumentImageURL).Return(ocr.ExtractionResult{
			Fields:     models.ExtractedFields{Name: "JANE DOE", DOB: "1990-02-01"},
			Text:       "NAME: JANE DOE",
			Confidence: 87.5,
		})
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeNationalID).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		record, err := s.service.Submit(s.ctx, userID, models.TypeNationalID, ev)
		s.Require().NoError(err)
		s.Equal("JANE DOE", record.ExtractedFields.Name)
		s.Equal("1990-02-01", record.ExtractedFields.DOB)
		s.InDelta(87.5, record.OCRConfidence, 1e-9)
	})

	s.Run("degraded extraction still persists the record", func() {
		ev := testutil.ValidEvidence(models.TypePassport)
		s.extractor.EXPECT().Extract(gomock.Any(), ev.DocumentImageURL).Return(ocr.ExtractionResult{Error: "fetch: timeout"})
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypePassport).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		record, err := s.service.Submit(s.ctx, userID, models.TypePassport, ev)
		s.Require().NoError(err)
		s.Zero(record.OCRConfidence)
		s.Empty(record.ExtractedFields)
		s.Equal(models.StatusPending, record.Status)
	})

	s.Run("selfie scores liveness and similarity against the latest document", func() {
		older := testutil.NewRecordBuilder().WithType(models.TypePassport).
			WithEvidence(models.Evidence{DocumentImageURL: "https://images.example.com/old-passport.jpg"}).
			WithTimes(testutil.FixedTime.Add(-2*time.Hour), testutil.FixedTime.Add(-2*time.Hour)).Build()
		newer := testutil.NewRecordBuilder().WithType(models.TypeNationalID).
			WithTimes(testutil.FixedTime.Add(-time.Hour), testutil.FixedTime.Add(-time.Hour)).Build()
		ev := testutil.ValidEvidence(models.TypeSelfie)

		s.store.EXPECT().FindByUser(gomock.Any(), userID).Return([]*models.VerificationRecord{older, newer}, nil)
		s.liveness.EXPECT().Score(gomock.Any(), ev.SelfieImageURL).Return(0.7)
		s.similarity.EXPECT().Score(gomock.Any(), newer.DocumentImageURL, ev.SelfieImageURL).Return(0.82)
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeSelfie).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		record, err := s.service.Submit(s.ctx, userID, models.TypeSelfie, ev)
		s.Require().NoError(err)
		s.Require().NotNil(record.LivenessScore)
		s.InDelta(0.7, *record.LivenessScore, 1e-9)
		s.Require().NotNil(record.IdentitySimilarityScore)
		s.InDelta(0.82, *record.IdentitySimilarityScore, 1e-9)
	})

	s.Run("selfie without a document skips similarity", func() {
		ev := testutil.ValidEvidence(models.TypeSelfie)
		s.store.EXPECT().FindByUser(gomock.Any(), userID).Return(nil, nil)
		s.liveness.EXPECT().Score(gomock.Any(), ev.SelfieImageURL).Return(0.3)
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeSelfie).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		record, err := s.service.Submit(s.ctx, userID, models.TypeSelfie, ev)
		s.Require().NoError(err)
		s.Require().NotNil(record.LivenessScore)
		s.InDelta(0.3, *record.LivenessScore, 1e-9)
		s.Nil(record.IdentitySimilarityScore)
	})
}

func (s *ServiceSuite) TestSubmit_StagesOutliveRequestCancellation() {
	userID := testutil.TestIDs.UserID1
	ev := testutil.ValidEvidence(models.TypeNationalID)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.extractor.EXPECT().Extract(gomock.Any(), ev.DocumentImageURL).DoAndReturn(
		func(stageCtx context.Context, _ string) ocr.ExtractionResult {
			s.NoError(stageCtx.Err())
			_, hasDeadline := stageCtx.Deadline()
			s.True(hasDeadline)
			return ocr.ExtractionResult{Confidence: 50}
		})
	s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeNationalID).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Submit(ctx, userID, models.TypeNationalID, ev)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSubmit_PanickingStageKeepsFallback() {
	userID := testutil.TestIDs.UserID1
	ev := testutil.ValidEvidence(models.TypeSelfie)
	doc := testutil.NewRecordBuilder().WithType(models.TypeNationalID).Build()

	s.store.EXPECT().FindByUser(gomock.Any(), userID).Return([]*models.VerificationRecord{doc}, nil)
	s.liveness.EXPECT().Score(gomock.Any(), ev.SelfieImageURL).DoAndReturn(
		func(context.Context, string) float64 { panic("slice bounds out of range") })
	s.similarity.EXPECT().Score(gomock.Any(), doc.DocumentImageURL, ev.SelfieImageURL).DoAndReturn(
		func(context.Context, string, string) float64 { panic("slice bounds out of range") })
	s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeSelfie).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	record, err := s.service.Submit(s.ctx, userID, models.TypeSelfie, ev)
	s.Require().NoError(err)
	s.Require().NotNil(record.LivenessScore)
	s.InDelta(liveness.FallbackScore, *record.LivenessScore, 1e-9)
	s.Require().NotNil(record.IdentitySimilarityScore)
	s.Zero(*record.IdentitySimilarityScore)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.StageFailuresTotal.WithLabelValues("liveness", "panic")))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.StageFailuresTotal.WithLabelValues("similarity", "panic")))
}

func (s *ServiceSuite) TestSubmit_OverwritesExistingRecord() {
	userID := testutil.TestIDs.UserID1
	existing := testutil.NewRecordBuilder().WithID(testutil.TestIDs.RecordID1).WithType(models.TypeAddress).
		WithTimes(testutil.FixedTime.Add(-time.Hour), testutil.FixedTime.Add(-time.Hour)).
		Reviewed(models.DecisionRejected, "reviewer-1", "blurry", testutil.FixedTime.Add(-30*time.Minute)).
		Build()
	ev := models.Evidence{AddressLine: "99 New Road", City: "Shelbyville", Country: "US"}

	s.Run("same type keeps the record ID and reopens review", func() {
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeAddress).Return(existing, nil)
		s.store.EXPECT().Update(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyPatch(existing))

		record, err := s.service.Submit(s.ctx, userID, models.TypeAddress, ev)
		s.Require().NoError(err)
		s.Equal(existing.ID, record.ID)
		s.Equal("99 New Road", record.AddressLine)
		s.Equal(models.StatusPending, record.Status)
		s.Nil(record.ReviewedBy)
		s.Nil(record.ReviewedAt)
		s.Nil(record.Notes)
		s.Equal(testutil.FixedTime, record.UpdatedAt)
	})

	s.Run("losing a create race falls back to overwrite", func() {
		gomock.InOrder(
			s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeAddress).Return(nil, sentinel.ErrNotFound),
			s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict),
			s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeAddress).Return(existing, nil),
			s.store.EXPECT().Update(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyPatch(existing)),
		)

		record, err := s.service.Submit(s.ctx, userID, models.TypeAddress, ev)
		s.Require().NoError(err)
		s.Equal(existing.ID, record.ID)
	})
}

func (s *ServiceSuite) TestSubmit_Errors() {
	userID := testutil.TestIDs.UserID1

	s.Run("nil user is rejected", func() {
		_, err := s.service.Submit(s.ctx, id.UserID{}, models.TypeAddress, testutil.ValidEvidence(models.TypeAddress))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("missing evidence is a validation error before any work", func() {
		_, err := s.service.Submit(s.ctx, userID, models.TypeSelfie, models.Evidence{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store failure maps to internal", func() {
		s.store.EXPECT().FindByUserAndType(gomock.Any(), userID, models.TypeAddress).Return(nil, errors.New("connection refused"))

		_, err := s.service.Submit(s.ctx, userID, models.TypeAddress, testutil.ValidEvidence(models.TypeAddress))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestResubmit() {
	userID := testutil.TestIDs.UserID1
	existing := testutil.NewRecordBuilder().WithID(testutil.TestIDs.RecordID1).WithType(models.TypeAddress).
		Reviewed(models.DecisionVerified, "reviewer-1", "", testutil.FixedTime.Add(-time.Hour)).Build()
	ev := models.Evidence{AddressLine: "1 Elm Street", City: "Springfield", Country: "US"}

	s.Run("clears review fields and keeps the ID", func() {
		s.store.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)
		s.store.EXPECT().Update(gomock.Any(), existing.ID, gomock.Any()).DoAndReturn(applyPatch(existing))

		record, err := s.service.Resubmit(s.ctx, userID, existing.ID, "", ev)
		s.Require().NoError(err)
		s.Equal(existing.ID, record.ID)
		s.Equal(models.StatusPending, record.Status)
		s.Nil(record.ReviewedBy)
		s.Nil(record.ReviewedAt)
		s.Equal("1 Elm Street", record.AddressLine)
	})

	s.Run("unknown record is not found", func() {
		s.store.EXPECT().FindByID(gomock.Any(), testutil.TestIDs.RecordID2).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Resubmit(s.ctx, userID, testutil.TestIDs.RecordID2, "", ev)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("another user's record is not found", func() {
		s.store.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)

		_, err := s.service.Resubmit(s.ctx, testutil.TestIDs.UserID2, existing.ID, "", ev)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("changing the type is a validation error", func() {
		s.store.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)

		_, err := s.service.Resubmit(s.ctx, userID, existing.ID, models.TypeSelfie, testutil.ValidEvidence(models.TypeSelfie))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("evidence is validated against the stored type", func() {
		s.store.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)

		_, err := s.service.Resubmit(s.ctx, userID, existing.ID, "", models.Evidence{City: "Springfield"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestGetKycStatus_MapsStoreErrors() {
	s.store.EXPECT().FindByUser(gomock.Any(), testutil.TestIDs.UserID1).Return(nil, errors.New("timeout"))

	_, err := s.service.GetKycStatus(s.ctx, testutil.TestIDs.UserID1)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

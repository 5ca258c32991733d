package service

import (
	"errors"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"kycgate/internal/kyc/models"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil"
)

func strPtr(v string) *string { return &v }

func (s *ServiceSuite) TestReview_ValidatesBeforeWriting() {
	recordID := testutil.TestIDs.RecordID1

	tests := []struct {
		name     string
		reviewer string
		decision models.Decision
		notes    *string
		code     dErrors.Code
	}{
		{"missing reviewer", "", models.DecisionVerified, nil, dErrors.CodeBadRequest},
		{"unknown decision", "reviewer-1", models.Decision("approved"), nil, dErrors.CodeValidation},
		{"pending is not a decision", "reviewer-1", models.Decision("pending"), nil, dErrors.CodeValidation},
		{"reject without notes", "reviewer-1", models.DecisionRejected, nil, dErrors.CodeValidation},
		{"reject with blank notes", "reviewer-1", models.DecisionRejected, strPtr("   "), dErrors.CodeValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			// No store expectations: any write fails the test.
			_, err := s.service.Review(s.ctx, tt.reviewer, recordID, tt.decision, tt.notes)
			s.True(dErrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func (s *ServiceSuite) TestReview_AppliesDecisionAndNotifies() {
	record := testutil.NewRecordBuilder().WithID(testutil.TestIDs.RecordID1).WithType(models.TypeAddress).Build()

	s.store.EXPECT().Update(gomock.Any(), record.ID, gomock.Any()).DoAndReturn(applyPatch(record))
	s.store.EXPECT().FindByUser(gomock.Any(), record.UserID).Return([]*models.VerificationRecord{record}, nil)
	s.notifier.EXPECT().Notify(gomock.Any(), record.UserID, models.OverallPending).Return(nil)

	got, err := s.service.Review(s.ctx, "reviewer-7", record.ID, models.DecisionRejected, strPtr("  address mismatch "))
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, got.Status)
	s.Require().NotNil(got.ReviewedBy)
	s.Equal("reviewer-7", *got.ReviewedBy)
	s.Require().NotNil(got.ReviewedAt)
	s.Equal(testutil.FixedTime, *got.ReviewedAt)
	s.Require().NotNil(got.Notes)
	s.Equal("address mismatch", *got.Notes)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ReviewsTotal.WithLabelValues("rejected", "ok")))
}

func (s *ServiceSuite) TestReview_NotFound() {
	s.store.EXPECT().Update(gomock.Any(), testutil.TestIDs.RecordID2, gomock.Any()).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.Review(s.ctx, "reviewer-1", testutil.TestIDs.RecordID2, models.DecisionVerified, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.ReviewsTotal.WithLabelValues("verified", string(dErrors.CodeNotFound))))
}

func (s *ServiceSuite) TestReview_NotificationFailureKeepsReview() {
	record := testutil.NewRecordBuilder().WithID(testutil.TestIDs.RecordID1).Build()

	s.Run("notifier error", func() {
		s.store.EXPECT().Update(gomock.Any(), record.ID, gomock.Any()).DoAndReturn(applyPatch(record))
		s.store.EXPECT().FindByUser(gomock.Any(), record.UserID).Return([]*models.VerificationRecord{record}, nil)
		s.notifier.EXPECT().Notify(gomock.Any(), record.UserID, gomock.Any()).Return(errors.New("broker down"))

		got, err := s.service.Review(s.ctx, "reviewer-1", record.ID, models.DecisionVerified, nil)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, got.Status)
	})

	s.Run("aggregate reload error", func() {
		s.store.EXPECT().Update(gomock.Any(), record.ID, gomock.Any()).DoAndReturn(applyPatch(record))
		s.store.EXPECT().FindByUser(gomock.Any(), record.UserID).Return(nil, errors.New("read replica lag"))

		got, err := s.service.Review(s.ctx, "reviewer-1", record.ID, models.DecisionVerified, nil)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, got.Status)
	})

	s.Equal(2.0, promtest.ToFloat64(s.metrics.NotificationFailures))
}

func (s *ServiceSuite) TestBulkReview_ReportsEachItem() {
	ok := testutil.NewRecordBuilder().WithID(testutil.TestIDs.RecordID1).Build()

	s.store.EXPECT().Update(gomock.Any(), ok.ID, gomock.Any()).DoAndReturn(applyPatch(ok))
	s.store.EXPECT().FindByUser(gomock.Any(), ok.UserID).Return([]*models.VerificationRecord{ok}, nil)
	s.notifier.EXPECT().Notify(gomock.Any(), ok.UserID, gomock.Any()).Return(nil)

	results, err := s.service.BulkReview(s.ctx, "reviewer-1", []models.BulkReviewItem{
		{RecordID: ok.ID.String(), Decision: "verified"},
		{RecordID: "not-a-uuid", Decision: "verified"},
		{RecordID: testutil.TestIDs.RecordID2.String(), Decision: "rejected"},
	})
	s.Require().NoError(err)
	s.Require().Len(results, 3)

	s.True(results[0].Success)
	s.Equal(models.StatusVerified, results[0].Record.Status)

	s.False(results[1].Success)
	s.Equal(string(dErrors.CodeInvalidInput), results[1].Error.Code)

	s.False(results[2].Success)
	s.Equal("not-a-uuid", results[1].RecordID)
	s.Equal(string(dErrors.CodeValidation), results[2].Error.Code, "reject without notes fails before the store")
}

func (s *ServiceSuite) TestBulkReview_RequiresReviewer() {
	_, err := s.service.BulkReview(s.ctx, " ", []models.BulkReviewItem{{RecordID: testutil.TestIDs.RecordID1.String(), Decision: "verified"}})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil"
)

// contractSuite holds behaviour every Store implementation must share.
// Concrete suites embed it and set newStore.
type contractSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
}

func (s *contractSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *contractSuite) TestCreateAndFindByID() {
	ctx := context.Background()
	liveness := 0.8
	record := testutil.NewRecordBuilder().WithType(models.TypeSelfie).Build()
	record.LivenessScore = &liveness
	record.ExtractedFields = models.ExtractedFields{Name: "JANE DOE"}

	s.Require().NoError(s.store.Create(ctx, record))

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.ID, got.ID)
	s.Equal(record.UserID, got.UserID)
	s.Equal(models.TypeSelfie, got.Type)
	s.Equal(record.Evidence, got.Evidence)
	s.Equal("JANE DOE", got.ExtractedFields.Name)
	s.Require().NotNil(got.LivenessScore)
	s.InDelta(0.8, *got.LivenessScore, 1e-9)
	s.Nil(got.IdentitySimilarityScore)
	s.Equal(models.StatusPending, got.Status)
	s.True(record.CreatedAt.Equal(got.CreatedAt))
}

func (s *contractSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(context.Background(), id.NewRecordID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestCreateConflictsOnSameUserAndType() {
	ctx := context.Background()
	first := testutil.NewRecordBuilder().WithType(models.TypeAddress).Build()
	second := testutil.NewRecordBuilder().WithType(models.TypeAddress).Build()

	s.Require().NoError(s.store.Create(ctx, first))
	s.ErrorIs(s.store.Create(ctx, second), sentinel.ErrConflict)

	other := testutil.NewRecordBuilder().WithType(models.TypeAddress).WithUserID(testutil.TestIDs.UserID2).Build()
	s.NoError(s.store.Create(ctx, other))
}

func (s *contractSuite) TestFindByUserOrderedByCreation() {
	ctx := context.Background()
	base := testutil.FixedTime
	selfie := testutil.NewRecordBuilder().WithType(models.TypeSelfie).WithTimes(base.Add(2*time.Minute), base.Add(2*time.Minute)).Build()
	nationalID := testutil.NewRecordBuilder().WithType(models.TypeNationalID).WithTimes(base, base.Add(time.Hour)).Build()
	address := testutil.NewRecordBuilder().WithType(models.TypeAddress).WithTimes(base.Add(time.Minute), base.Add(time.Minute)).Build()
	foreign := testutil.NewRecordBuilder().WithType(models.TypeSelfie).WithUserID(testutil.TestIDs.UserID2).Build()

	for _, r := range []*models.VerificationRecord{selfie, nationalID, address, foreign} {
		s.Require().NoError(s.store.Create(ctx, r))
	}

	got, err := s.store.FindByUser(ctx, testutil.TestIDs.UserID1)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(nationalID.ID, got[0].ID)
	s.Equal(address.ID, got[1].ID)
	s.Equal(selfie.ID, got[2].ID)

	none, err := s.store.FindByUser(ctx, id.UserID(id.NewRecordID()))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *contractSuite) TestFindByUserAndType() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().WithType(models.TypePassport).Build()
	s.Require().NoError(s.store.Create(ctx, record))

	got, err := s.store.FindByUserAndType(ctx, record.UserID, models.TypePassport)
	s.Require().NoError(err)
	s.Equal(record.ID, got.ID)

	_, err = s.store.FindByUserAndType(ctx, record.UserID, models.TypeSelfie)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestUpdateAppliesPatch() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().Build()
	s.Require().NoError(s.store.Create(ctx, record))
	reviewedAt := testutil.FixedTime.Add(time.Hour)

	updated, err := s.store.Update(ctx, record.ID, func(r *models.VerificationRecord) error {
		return r.ApplyReview("admin-1", models.DecisionRejected, strPtr("blurry"), reviewedAt)
	})
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, updated.Status)

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, got.Status)
	s.Require().NotNil(got.ReviewedBy)
	s.Equal("admin-1", *got.ReviewedBy)
	s.Require().NotNil(got.ReviewedAt)
	s.True(reviewedAt.Equal(*got.ReviewedAt))
	s.Require().NotNil(got.Notes)
	s.Equal("blurry", *got.Notes)
	s.True(reviewedAt.Equal(got.UpdatedAt))
}

func (s *contractSuite) TestUpdatePatchErrorLeavesRecordUnchanged() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().Build()
	s.Require().NoError(s.store.Create(ctx, record))
	patchErr := errors.New("invalid decision")

	_, err := s.store.Update(ctx, record.ID, func(r *models.VerificationRecord) error {
		r.Status = models.StatusVerified
		return patchErr
	})
	s.ErrorIs(err, patchErr)

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, got.Status)
}

func (s *contractSuite) TestUpdateCannotChangeIdentity() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().Build()
	s.Require().NoError(s.store.Create(ctx, record))

	updated, err := s.store.Update(ctx, record.ID, func(r *models.VerificationRecord) error {
		r.Type = models.TypeSelfie
		r.UserID = testutil.TestIDs.UserID2
		r.CreatedAt = time.Time{}
		return nil
	})
	s.Require().NoError(err)
	s.Equal(models.TypeNationalID, updated.Type)
	s.Equal(record.UserID, updated.UserID)
	s.True(record.CreatedAt.Equal(updated.CreatedAt))
}

func (s *contractSuite) TestUpdateNotFound() {
	_, err := s.store.Update(context.Background(), id.NewRecordID(), func(*models.VerificationRecord) error {
		return nil
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestConcurrentUpdatesAreSerialized() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().Build()
	s.Require().NoError(s.store.Create(ctx, record))

	result := testutil.RunConcurrent(20, func(idx int) error {
		_, err := s.store.Update(ctx, record.ID, func(r *models.VerificationRecord) error {
			r.OCRConfidence++
			return nil
		})
		return err
	})
	s.Equal(int32(20), result.Successes)

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.InDelta(20.0, got.OCRConfidence, 1e-9)
}

func (s *contractSuite) TestReturnedRecordsAreCopies() {
	ctx := context.Background()
	record := testutil.NewRecordBuilder().Build()
	s.Require().NoError(s.store.Create(ctx, record))

	record.Status = models.StatusVerified
	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, got.Status)

	got.Status = models.StatusRejected
	again, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, again.Status)
}

func strPtr(s string) *string {
	return &s
}

package service

import (
	"context"
	"strings"

	"kycgate/internal/kyc/aggregate"
	"kycgate/internal/kyc/models"
	"kycgate/internal/platform/tracer"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/requestcontext"
)

// Review applies a reviewer decision, recomputes the owner's aggregate and
// notifies it. The decision is validated before anything is written. A failed
// notification is logged and counted but the review stands.
func (s *Service) Review(ctx context.Context, reviewerID string, recordID id.RecordID, decision models.Decision, notes *string) (*models.VerificationRecord, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReview,
		tracer.String(tracer.AttrRecordID, recordID.String()),
		tracer.String(tracer.AttrDecision, string(decision)),
	)
	record, err := s.review(ctx, reviewerID, recordID, decision, notes)
	span.End(err)

	result := "ok"
	if err != nil {
		result = string(dErrors.CodeOf(err))
	}
	s.metrics.IncReview(string(decision), result)
	return record, err
}

// BulkReview reviews each item independently. One failing item never affects
// the others; every item gets a result in request order.
func (s *Service) BulkReview(ctx context.Context, reviewerID string, items []models.BulkReviewItem) ([]models.BulkReviewResult, error) {
	if err := requireReviewer(reviewerID); err != nil {
		return nil, err
	}

	results := make([]models.BulkReviewResult, 0, len(items))
	for _, item := range items {
		res := models.BulkReviewResult{RecordID: item.RecordID}
		record, err := s.reviewItem(ctx, reviewerID, item)
		if err != nil {
			res.Error = &models.ItemError{
				Code:    string(dErrors.CodeOf(err)),
				Message: err.Error(),
			}
		} else {
			res.Success = true
			res.Record = record
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) reviewItem(ctx context.Context, reviewerID string, item models.BulkReviewItem) (*models.VerificationRecord, error) {
	recordID, err := id.ParseRecordID(item.RecordID)
	if err != nil {
		return nil, err
	}
	return s.Review(ctx, reviewerID, recordID, models.Decision(item.Decision), item.Notes)
}

func (s *Service) review(ctx context.Context, reviewerID string, recordID id.RecordID, decision models.Decision, notes *string) (*models.VerificationRecord, error) {
	if err := requireReviewer(reviewerID); err != nil {
		return nil, err
	}
	if recordID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "record ID required")
	}
	if err := models.ValidateDecision(decision, notes); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.store.Update(ctx, recordID, func(r *models.VerificationRecord) error {
		return r.ApplyReview(reviewerID, decision, notes, now)
	})
	if err != nil {
		return nil, translateStoreError(err, "review verification record")
	}

	s.logger.InfoContext(ctx, "verification reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", record.ID.String(),
		"user_id", record.UserID.String(),
		"reviewer_id", reviewerID,
		"decision", string(decision),
	)
	s.notifyStatus(context.WithoutCancel(ctx), record.UserID)
	return record, nil
}

// notifyStatus recomputes the user's aggregate and dispatches it.
func (s *Service) notifyStatus(ctx context.Context, userID id.UserID) {
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		s.metrics.IncNotificationFailure()
		s.logger.ErrorContext(ctx, "failed to recompute kyc status for notification",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID.String(),
			"error", err,
		)
		return
	}
	agg := aggregate.Aggregate(userID, records, s.requiredTypes)
	if err := s.notifier.Notify(ctx, userID, agg.OverallStatus); err != nil {
		s.metrics.IncNotificationFailure()
		s.logger.WarnContext(ctx, "failed to dispatch kyc status notification",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID.String(),
			"overall_status", string(agg.OverallStatus),
			"error", err,
		)
	}
}

func requireReviewer(reviewerID string) error {
	if strings.TrimSpace(reviewerID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "reviewer identity is required")
	}
	return nil
}

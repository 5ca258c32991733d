package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kycgate/internal/kyc/evidence"
	"kycgate/internal/kyc/evidence/liveness"
	"kycgate/internal/kyc/models"
	"kycgate/internal/platform/tracer"
	id "kycgate/pkg/domain"
)

// collectEvidence runs the stages that apply to t concurrently and combines
// their results. Stages are fail-soft, so this never returns an error.
//
// The stage context is detached from the request: a client that disconnects
// does not cancel extraction, but every stage is bounded by the evidence timeout.
func (s *Service) collectEvidence(ctx context.Context, userID id.UserID, t models.VerificationType, ev models.Evidence, documentURL string) models.DerivedEvidence {
	ctx, span := s.tracer.Start(ctx, tracer.SpanSubmission,
		tracer.String(tracer.AttrUserID, userID.String()),
		tracer.String(tracer.AttrVerificationType, t.String()),
	)
	defer span.End(nil)

	stageCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.evidenceTimeout)
	defer cancel()

	var (
		derived         models.DerivedEvidence
		livenessScore   float64
		similarityScore float64
		g               errgroup.Group
	)

	runExtract := t.IsIdentityDocument() && ev.DocumentImageURL != ""
	runLiveness := t == models.TypeSelfie && ev.SelfieImageURL != ""
	runSimilarity := runLiveness && documentURL != ""

	if runExtract {
		g.Go(func() error {
			derived.OCRError = "extraction did not complete"
			defer s.recoverStage(ctx, evidence.StageOCR)
			res := s.stages.Extractor.Extract(stageCtx, ev.DocumentImageURL)
			derived.Extracted = res.Fields
			derived.ExtractedText = res.Text
			derived.OCRConfidence = res.Confidence
			derived.OCRError = res.Error
			return nil
		})
	}
	if runLiveness {
		g.Go(func() error {
			livenessScore = liveness.FallbackScore
			defer s.recoverStage(ctx, evidence.StageLiveness)
			livenessScore = s.stages.Liveness.Score(stageCtx, ev.SelfieImageURL)
			return nil
		})
	}
	if runSimilarity {
		g.Go(func() error {
			defer s.recoverStage(ctx, evidence.StageSimilarity)
			similarityScore = s.stages.Similarity.Score(stageCtx, documentURL, ev.SelfieImageURL)
			return nil
		})
	}
	_ = g.Wait()

	if runLiveness {
		derived.LivenessScore = &livenessScore
	}
	if runSimilarity {
		derived.IdentitySimilarityScore = &similarityScore
	}
	span.SetAttributes(tracer.Bool(tracer.AttrDegraded, derived.OCRError != ""))
	return derived
}

// recoverStage keeps a panicking stage from taking down the process. The
// stage's slot keeps its fallback value.
func (s *Service) recoverStage(ctx context.Context, stage string) {
	if r := recover(); r != nil {
		s.metrics.IncStageFailure(stage, string(evidence.CategoryPanic))
		s.logger.ErrorContext(ctx, "evidence stage panicked", "stage", stage, "panic", r)
	}
}

// documentImageFor returns the image of the user's most recently updated
// identity document, or "" when there is none.
func (s *Service) documentImageFor(ctx context.Context, userID id.UserID) (string, error) {
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return "", translateStoreError(err, "load identity documents")
	}
	var latest *models.VerificationRecord
	for _, r := range records {
		if !r.Type.IsIdentityDocument() || r.DocumentImageURL == "" {
			continue
		}
		if latest == nil || r.UpdatedAt.After(latest.UpdatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return "", nil
	}
	return latest.DocumentImageURL, nil
}

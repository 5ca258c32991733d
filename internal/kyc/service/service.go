// Package service orchestrates KYC submissions, reviews and status aggregation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kycgate/internal/kyc/evidence/ocr"
	"kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/models"
	"kycgate/internal/kyc/notify"
	"kycgate/internal/kyc/store"
	"kycgate/internal/platform/tracer"
	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/sentinel"
)

// RecordStore persists verification records.
// Error Contract:
// - FindByID and FindByUserAndType return sentinel.ErrNotFound when no record exists
// - Create returns sentinel.ErrConflict when the (user, type) pair is taken
// - Update passes patch errors through unchanged
type RecordStore interface {
	Create(ctx context.Context, record *models.VerificationRecord) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.VerificationRecord, error)
	FindByUser(ctx context.Context, userID id.UserID) ([]*models.VerificationRecord, error)
	FindByUserAndType(ctx context.Context, userID id.UserID, t models.VerificationType) (*models.VerificationRecord, error)
	Update(ctx context.Context, recordID id.RecordID, patch store.PatchFunc) (*models.VerificationRecord, error)
}

// Extractor reads structured fields from a document image. It never fails;
// a degraded result carries a non-empty Error.
type Extractor interface {
	Extract(ctx context.Context, imageURL string) ocr.ExtractionResult
}

// LivenessScorer scores a selfie in [0,1].
type LivenessScorer interface {
	Score(ctx context.Context, selfieURL string) float64
}

// SimilarityScorer compares a document portrait with a selfie, 0 on failure.
type SimilarityScorer interface {
	Score(ctx context.Context, documentURL, selfieURL string) float64
}

// Notifier receives the owner's overall status after every review.
type Notifier interface {
	Notify(ctx context.Context, userID id.UserID, status models.OverallStatus) error
}

// Stages are the evidence stages run on submission.
type Stages struct {
	Extractor  Extractor
	Liveness   LivenessScorer
	Similarity SimilarityScorer
}

// Config holds service tunables.
type Config struct {
	RequiredTypes   []models.VerificationType
	EvidenceTimeout time.Duration
}

const defaultEvidenceTimeout = 30 * time.Second

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithNotifier replaces the default log notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// Service implements submission, review and status queries.
type Service struct {
	store           RecordStore
	stages          Stages
	notifier        Notifier
	requiredTypes   []models.VerificationType
	evidenceTimeout time.Duration
	logger          *slog.Logger
	tracer          tracer.Tracer
	metrics         *metrics.Metrics
}

func New(st RecordStore, stages Stages, cfg Config, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("record store is required")
	}
	if stages.Extractor == nil || stages.Liveness == nil || stages.Similarity == nil {
		return nil, errors.New("all evidence stages are required")
	}

	svc := &Service{
		store:           st,
		stages:          stages,
		requiredTypes:   append([]models.VerificationType(nil), cfg.RequiredTypes...),
		evidenceTimeout: cfg.EvidenceTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if len(svc.requiredTypes) == 0 {
		svc.requiredTypes = models.DefaultRequiredTypes()
	}
	if svc.evidenceTimeout <= 0 {
		svc.evidenceTimeout = defaultEvidenceTimeout
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	if svc.notifier == nil {
		svc.notifier = notify.NewLogNotifier(svc.logger)
	}
	return svc, nil
}

// RequiredTypes returns the configured required set.
func (s *Service) RequiredTypes() []models.VerificationType {
	return append([]models.VerificationType(nil), s.requiredTypes...)
}

// translateStoreError maps store sentinels to domain errors. Domain errors
// raised inside patches pass through unchanged.
func translateStoreError(err error, action string) error {
	var domainErr *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "verification record not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "verification record already exists for this type")
	case errors.As(err, &domainErr):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
	}
}

func requireUser(userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ID required")
	}
	return nil
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/requestcontext"
)

// Service defines the KYC operations exposed over HTTP.
type Service interface {
	Submit(ctx context.Context, userID id.UserID, t models.VerificationType, ev models.Evidence) (*models.VerificationRecord, error)
	Resubmit(ctx context.Context, userID id.UserID, recordID id.RecordID, t models.VerificationType, ev models.Evidence) (*models.VerificationRecord, error)
	GetUserVerifications(ctx context.Context, userID id.UserID) ([]*models.VerificationRecord, error)
	GetKycStatus(ctx context.Context, userID id.UserID) (*models.KycAggregate, error)
	Review(ctx context.Context, reviewerID string, recordID id.RecordID, decision models.Decision, notes *string) (*models.VerificationRecord, error)
	BulkReview(ctx context.Context, reviewerID string, items []models.BulkReviewItem) ([]models.BulkReviewResult, error)
}

// Handler serves the verification and review endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the user-facing routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users/{userID}/verifications", h.HandleSubmit)
	r.Put("/users/{userID}/verifications/{recordID}", h.HandleResubmit)
	r.Get("/users/{userID}/verifications", h.HandleListVerifications)
	r.Get("/users/{userID}/kyc-status", h.HandleKycStatus)
}

// RegisterAdmin mounts the reviewer routes. The caller applies the admin guard.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/verifications/review", h.HandleBulkReview)
	r.Post("/admin/verifications/{recordID}/review", h.HandleReview)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SubmitRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.Submit(ctx, userID, models.VerificationType(req.VerificationType), req.Evidence)
	if err != nil {
		h.logFailure(ctx, "submit verification failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) HandleResubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	recordID, ok := h.recordIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ResubmitRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.Resubmit(ctx, userID, recordID, models.VerificationType(req.VerificationType), req.Evidence)
	if err != nil {
		h.logFailure(ctx, "resubmit verification failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) HandleListVerifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	records, err := h.service.GetUserVerifications(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "list verifications failed", err)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []*models.VerificationRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, models.VerificationList{
		UserID:        userID,
		Verifications: records,
		Total:         len(records),
	})
}

func (h *Handler) HandleKycStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	agg, err := h.service.GetKycStatus(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "kyc status failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}

func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recordID, ok := h.recordIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ReviewRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.Review(ctx, requestcontext.AdminActorID(ctx), recordID, models.Decision(req.Decision), req.Notes)
	if err != nil {
		h.logFailure(ctx, "review verification failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) HandleBulkReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.BulkReviewRequest](w, r, h.logger)
	if !ok {
		return
	}

	results, err := h.service.BulkReview(ctx, requestcontext.AdminActorID(ctx), req.Items)
	if err != nil {
		h.logFailure(ctx, "bulk review failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewBulkReviewResponse(results))
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) recordIDParam(w http.ResponseWriter, r *http.Request) (id.RecordID, bool) {
	recordID, err := id.ParseRecordID(chi.URLParam(r, "recordID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.RecordID{}, false
	}
	return recordID, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}

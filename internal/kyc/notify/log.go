package notify

import (
	"context"
	"log/slog"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// LogNotifier writes status changes to the log. Used when Kafka is not configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, userID id.UserID, status models.OverallStatus) error {
	n.logger.InfoContext(ctx, "kyc status changed",
		"event_type", EventType,
		"user_id", userID.String(),
		"status", string(status),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)

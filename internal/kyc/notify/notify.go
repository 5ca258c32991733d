// Package notify dispatches aggregate status changes to downstream consumers.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// EventType identifies status-change events on the wire.
const EventType = "kyc.status.changed"

// Event is the payload sent for every aggregate status notification.
type Event struct {
	EventID    string               `json:"event_id"`
	UserID     string               `json:"user_id"`
	Status     models.OverallStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// NewEvent builds an event with a fresh ID.
func NewEvent(userID id.UserID, status models.OverallStatus, occurredAt time.Time) Event {
	return Event{
		EventID:    uuid.NewString(),
		UserID:     userID.String(),
		Status:     status,
		OccurredAt: occurredAt.UTC(),
	}
}

// Notifier delivers a user's overall status.
type Notifier interface {
	Notify(ctx context.Context, userID id.UserID, status models.OverallStatus) error
}

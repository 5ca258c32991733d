package notify

import (
	"context"
	"sync"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// Notification is one call recorded by InMemoryNotifier.
type Notification struct {
	UserID id.UserID
	Status models.OverallStatus
}

// InMemoryNotifier records notifications for tests. When Err is set every
// call fails with it and nothing is recorded.
type InMemoryNotifier struct {
	mu   sync.Mutex
	sent []Notification
	Err  error
}

func NewInMemoryNotifier() *InMemoryNotifier {
	return &InMemoryNotifier{}
}

func (n *InMemoryNotifier) Notify(_ context.Context, userID id.UserID, status models.OverallStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, Notification{UserID: userID, Status: status})
	return nil
}

// Sent returns a copy of the recorded notifications.
func (n *InMemoryNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

var _ Notifier = (*InMemoryNotifier)(nil)

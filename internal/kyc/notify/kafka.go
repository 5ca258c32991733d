package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kycgate/internal/kyc/models"
	"kycgate/internal/platform/kafka/producer"
	id "kycgate/pkg/domain"
)

// MessageProducer is the subset of the Kafka producer used here.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaNotifier publishes events keyed by user ID so a user's updates stay
// ordered within a partition.
type KafkaNotifier struct {
	producer MessageProducer
	topic    string
	now      func() time.Time
}

func NewKafkaNotifier(p MessageProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: p, topic: topic, now: time.Now}
}

func (n *KafkaNotifier) Notify(ctx context.Context, userID id.UserID, status models.OverallStatus) error {
	event := NewEvent(userID, status, n.now())
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	err = n.producer.Produce(ctx, &producer.Message{
		Topic: n.topic,
		Key:   []byte(event.UserID),
		Value: payload,
		Headers: map[string]string{
			"event_type":   EventType,
			"event_id":     event.EventID,
			"content_type": "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}
	return nil
}

var _ Notifier = (*KafkaNotifier)(nil)

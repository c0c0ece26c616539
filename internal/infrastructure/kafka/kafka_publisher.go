package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// NotificationPublisher implements domain.NotificationGateway over a
// Kafka topic. Delivery downstream is asynchronous; a write failure
// here is the caller's cue to log and move on, never to fail the
// transition that triggered the message.
type NotificationPublisher struct {
	writer *kafka.Writer
}

func NewNotificationPublisher(cfg KafkaConfig) *NotificationPublisher {
	return &NotificationPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *NotificationPublisher) Notify(ctx context.Context, userID, message, category, orderID string) error {
	event := NotificationEvent{
		UserID:    userID,
		Message:   message,
		Category:  category,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(userID),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}

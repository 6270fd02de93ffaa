package repository

import (
	"context"
	"fmt"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	pkgkafka "Elysian/pkg/kafka"
)

// KafkaPublisher publishes prediction records keyed by symbol.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

var _ domrepo.Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, pred *models.Prediction) error {
	if pred == nil {
		return fmt.Errorf("prediction is nil")
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(pred.Symbol), pred); err != nil {
		return fmt.Errorf("publish prediction: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, preds []*models.Prediction) error {
	if len(preds) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(preds))
	for _, pred := range preds {
		if pred == nil {
			continue
		}
		msgs = append(msgs, pkgkafka.Message{Key: []byte(pred.Symbol), Value: pred})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

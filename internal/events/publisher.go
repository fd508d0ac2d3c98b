// Package events publishes accepted transactions to Kafka for downstream
// consumers. Publishing is best-effort and never blocks the request path.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rogerio-castellano/warehouse-api/internal/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns nil when no broker is configured; a nil publisher
// drops every event.
func NewPublisher(broker, topic string) *Publisher {
	if broker == "" {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Publisher) PublishTransaction(t models.Transaction) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(t)
	if err != nil {
		zap.L().Error("failed to marshal transaction event", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(t.ProductName),
			Value: payload,
		})
		if err != nil {
			zap.L().Error("failed to publish transaction event",
				zap.String("reference", t.Reference), zap.Error(err))
		}
	}()
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

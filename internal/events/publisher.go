package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/config"
	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// OrderEvent сообщение о смене статуса заказа
type OrderEvent struct {
	EventID string    `json:"event_id"`
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Type    string    `json:"type,omitempty"`
	Email   string    `json:"email,omitempty"`
	ICCID   string    `json:"iccid,omitempty"`
	At      time.Time `json:"at"`
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	logger *slog.Logger
	writer MessageWriter
	now    func() time.Time
}

func NewPublisher(logger *slog.Logger, cfg config.Kafka) *Publisher {
	return NewPublisherWithWriter(logger, &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.EventsTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisherWithWriter(logger *slog.Logger, writer MessageWriter) *Publisher {
	return &Publisher{
		logger: logger.With(slog.String("service", "events")),
		writer: writer,
		now:    time.Now,
	}
}

// Publish ключ сообщения order_id, поэтому события одного заказа идут в одну партицию по порядку
func (p *Publisher) Publish(ctx context.Context, order entities.Order) error {
	event := OrderEvent{
		EventID: uuid.NewString(),
		OrderID: order.OrderID,
		Status:  string(order.Status),
		Type:    string(order.Type),
		Email:   order.CustomerEmail,
		ICCID:   order.ICCID,
		At:      p.now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	p.logger.Debug("order event published",
		slog.String("event_id", event.EventID),
		slog.String("order_id", event.OrderID),
		slog.String("status", event.Status),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/config"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type CallbackHandler interface {
	HandlePaymentCallback(ctx context.Context, method string, raw payment.RawCallback) (service.CallbackResult, error)
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaHandler читает колбэки оплаты, пересланные из внешнего приёмника
type kafkaHandler struct {
	dlq      MessageWriter
	reader   MessageReader
	logger   *slog.Logger
	validate *validator.Validate
	svc      CallbackHandler
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, svc CallbackHandler) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.CallbackTopic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaHandlerWith(logger, reader, dlq, svc)
}

func NewKafkaHandlerWith(logger *slog.Logger, reader MessageReader, dlq MessageWriter, svc CallbackHandler) *kafkaHandler {
	return &kafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.HandleMessage(ctx, m); err != nil {
			callbacksConsumed.WithLabelValues("rejected").Inc()
			h.logger.Error("failed to handle callback", slog.Int64("offset", m.Offset), slog.Any("error", err))

			// у writer свои повторы
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
		} else {
			callbacksConsumed.WithLabelValues("ok").Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// HandleMessage повторная доставка того же сообщения безопасна: дубликаты отсекает сервис
func (h *kafkaHandler) HandleMessage(ctx context.Context, m kafka.Message) error {
	callbacksInProgress.Inc()
	defer callbacksInProgress.Dec()

	var msg CallbackMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal callback: %w", err)
	}
	if err := h.validate.Struct(msg); err != nil {
		return fmt.Errorf("invalid callback message: %w", err)
	}

	start := time.Now()
	_, err := h.svc.HandlePaymentCallback(ctx, msg.Method, msg.Raw())
	callbackDuration.WithLabelValues(msg.Method).Observe(time.Since(start).Seconds())
	return err
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	callbacksDLQ.Inc()
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}

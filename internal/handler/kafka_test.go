package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/esim-order-service/internal/handler/mocks"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeReader отдаёт сообщения по очереди, затем io.EOF
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

type fakeDLQ struct {
	msgs []kafka.Message
}

func (w *fakeDLQ) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeDLQ) Close() error { return nil }

func TestKafkaHandler_Consume(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	topic := "payment-callbacks"

	valid := kafka.Message{Topic: topic, Offset: 1, Value: []byte(`{"method":"robokassa","payload":"OutSum=9.99&InvId=100200300&SignatureValue=abc"}`)}
	duplicate := kafka.Message{Topic: topic, Offset: 2, Value: valid.Value}
	forged := kafka.Message{Topic: topic, Offset: 3, Value: []byte(`{"method":"robokassa","payload":"OutSum=0.01&InvId=100200300&SignatureValue=bad"}`)}
	broken := kafka.Message{Topic: topic, Offset: 4, Value: []byte(`not json`)}
	noMethod := kafka.Message{Topic: topic, Offset: 5, Value: []byte(`{"payload":"x"}`)}

	svc := mocks.NewMockOrderService(t)
	svc.EXPECT().
		HandlePaymentCallback(mock.Anything, payment.MethodRobokassa, mock.MatchedBy(func(raw payment.RawCallback) bool {
			return raw.Payload == "OutSum=9.99&InvId=100200300&SignatureValue=abc"
		})).
		Return(service.CallbackResult{Ack: "OK100200300"}, nil).Twice()
	svc.EXPECT().
		HandlePaymentCallback(mock.Anything, payment.MethodRobokassa, mock.MatchedBy(func(raw payment.RawCallback) bool {
			return raw.Payload == "OutSum=0.01&InvId=100200300&SignatureValue=bad"
		})).
		Return(service.CallbackResult{}, entities.ErrSignatureMismatch).Once()

	reader := &fakeReader{msgs: []kafka.Message{valid, duplicate, forged, broken, noMethod}}
	dlq := &fakeDLQ{}
	h := handler.NewKafkaHandlerWith(logger, reader, dlq, svc)

	done := make(chan struct{})
	go func() {
		h.Consume(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop on EOF")
	}

	assert.Len(t, reader.committed, 5)
	require.Len(t, dlq.msgs, 3)
	for _, m := range dlq.msgs {
		assert.Equal(t, topic+"-dlq", m.Topic)
	}
	assert.Equal(t, forged.Value, dlq.msgs[0].Value)
}

func TestKafkaHandler_HandleMessageError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := mocks.NewMockOrderService(t)
	svc.EXPECT().HandlePaymentCallback(mock.Anything, payment.MethodStripe, mock.Anything).
		Return(service.CallbackResult{}, errors.New("db down")).Once()

	h := handler.NewKafkaHandlerWith(logger, &fakeReader{}, &fakeDLQ{}, svc)
	err := h.HandleMessage(context.Background(), kafka.Message{
		Value: []byte(`{"method":"stripe","headers":{"Stripe-Signature":["t=1,v1=abc"]},"payload":"{}"}`),
	})
	assert.ErrorContains(t, err, "db down")
}

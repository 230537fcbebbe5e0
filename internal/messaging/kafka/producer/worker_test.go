package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-teamhub/internal/messaging/kafka"
	"go-teamhub/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository                { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestProcessPending(t *testing.T) {
	repo := &fakeOutbox{
		failed: map[string]string{},
		pending: []kafka.OutboxEvent{
			{ID: "e-1", AggregateID: "leave-1", EventType: "leave_decided", Topic: "t", Payload: []byte(`{}`), RequestID: "rid-1"},
			{ID: "e-2", AggregateID: "leave-2", EventType: "leave_decided", Topic: "t", Payload: []byte(`{}`)},
		},
	}
	writer := &fakeWriter{failKey: "leave-2"}

	sent, err := producer.ProcessPending(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"e-1"}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed["e-2"])

	if assert.Len(t, writer.messages, 1) {
		msg := writer.messages[0]
		assert.Equal(t, "t", msg.Topic)
		assert.Equal(t, "leave-1", string(msg.Key))
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
	}
}

func TestProcessPending_Empty(t *testing.T) {
	sent, err := producer.ProcessPending(context.Background(), &fakeOutbox{}, &fakeWriter{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Zero(t, sent)
}

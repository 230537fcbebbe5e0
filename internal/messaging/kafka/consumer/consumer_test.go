package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-teamhub/internal/events"
	"go-teamhub/internal/notification"
	walleterrors "go-teamhub/internal/wallet/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func newReader(t *testing.T, values ...any) (*fakeReader, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := &fakeReader{cancel: cancel}
	for i, v := range values {
		var raw []byte
		switch val := v.(type) {
		case []byte:
			raw = val
		default:
			b, err := json.Marshal(val)
			require.NoError(t, err)
			raw = b
		}
		r.messages = append(r.messages, kafkago.Message{
			Offset:  int64(i),
			Value:   raw,
			Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-1")}},
		})
	}
	return r, ctx
}

type fakeWallets struct {
	calls []string
	errs  []error
}

func (f *fakeWallets) OpenInitialWallet(ctx context.Context, userID string) error {
	f.calls = append(f.calls, userID)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

type fakeMailer struct {
	sent []notification.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg notification.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func fastRetry(t *testing.T) {
	t.Helper()
	prev := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = prev })
}

func TestConsumeEmployeeLifecycle_OpensWallet(t *testing.T) {
	reader, ctx := newReader(t,
		events.EmployeeCreatedEvent{EventType: events.EmployeeCreatedType, UserID: "u-1"},
		events.EmployeeCreatedEvent{EventType: "employee_deleted", UserID: "u-2"},
		[]byte("{not json"),
	)
	wallets := &fakeWallets{}

	ConsumeEmployeeLifecycle(ctx, reader, wallets, zap.NewNop())

	assert.Equal(t, []string{"u-1"}, wallets.calls)
	assert.Equal(t, []int64{0, 1, 2}, reader.committed)
}

func TestConsumeEmployeeLifecycle_SkipsExistingWallet(t *testing.T) {
	reader, ctx := newReader(t,
		events.EmployeeCreatedEvent{UserID: "u-1"},
		events.EmployeeCreatedEvent{UserID: "u-2"},
	)
	wallets := &fakeWallets{errs: []error{walleterrors.ErrActiveWalletExists, walleterrors.ErrUserNotFound}}

	ConsumeEmployeeLifecycle(ctx, reader, wallets, zap.NewNop())

	assert.Equal(t, []string{"u-1", "u-2"}, wallets.calls)
	assert.Equal(t, []int64{0, 1}, reader.committed)
}

func TestConsumeEmployeeLifecycle_RetriesTransientFailure(t *testing.T) {
	fastRetry(t)
	reader, ctx := newReader(t, events.EmployeeCreatedEvent{UserID: "u-1"})
	wallets := &fakeWallets{errs: []error{errors.New("db down"), errors.New("db down")}}

	ConsumeEmployeeLifecycle(ctx, reader, wallets, zap.NewNop())

	assert.Len(t, wallets.calls, 3)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestConsumeEmployeeLifecycle_GivesUpAfterMaxAttempts(t *testing.T) {
	fastRetry(t)
	reader, ctx := newReader(t, events.EmployeeCreatedEvent{UserID: "u-1"})
	failures := make([]error, maxAttempts)
	for i := range failures {
		failures[i] = errors.New("db down")
	}
	wallets := &fakeWallets{errs: failures}

	ConsumeEmployeeLifecycle(ctx, reader, wallets, zap.NewNop())

	assert.Len(t, wallets.calls, maxAttempts)
	assert.Equal(t, []int64{0}, reader.committed)
}

func TestConsumeLeaveDecisions_SendsEmail(t *testing.T) {
	reader, ctx := newReader(t,
		events.LeaveDecidedEvent{
			LeaveID:       "l-1",
			EmployeeName:  "Asha Rao",
			EmployeeEmail: "asha@teamhub.in",
			Decision:      notification.DecisionApproved,
			StartDate:     "2026-03-10",
			EndDate:       "2026-03-11",
			DecidedBy:     "Meera HR",
		},
		events.LeaveDecidedEvent{LeaveID: "l-2", Decision: "pending"},
	)
	mailer := &fakeMailer{}

	ConsumeLeaveDecisions(ctx, reader, mailer, zap.NewNop())

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "asha@teamhub.in", mailer.sent[0].To)
	assert.Equal(t, "Leave Request Approved", mailer.sent[0].Subject)
	assert.Equal(t, []int64{0, 1}, reader.committed)
}

func TestRequestIDHeader(t *testing.T) {
	msg := kafkago.Message{Headers: []kafkago.Header{{Key: "request_id", Value: []byte("abc")}}}
	assert.Equal(t, "abc", requestIDHeader(msg))
	assert.Empty(t, requestIDHeader(kafkago.Message{}))
}

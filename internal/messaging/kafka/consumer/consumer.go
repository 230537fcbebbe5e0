package consumer

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// errSkip marks a message that can never succeed; it is committed and dropped.
var errSkip = errors.New("skip message")

const maxAttempts = 5

var retryBackoff = time.Second

type handlerFunc func(ctx context.Context, msg kafkago.Message) error

// consume fetches messages until ctx is cancelled. A failing message is
// retried with exponential backoff before it is given up on, since
// committing a later offset would commit past it anyway.
func consume(ctx context.Context, reader MessageReader, log *zap.Logger, handle handlerFunc) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handleWithRetry(ctx, msg, log, handle); err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("giving up on message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func handleWithRetry(ctx context.Context, msg kafkago.Message, log *zap.Logger, handle handlerFunc) error {
	backoff := retryBackoff
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = handle(ctx, msg)
		if err == nil || errors.Is(err, errSkip) {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		log.Warn("handle message failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

func requestIDHeader(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			return string(h.Value)
		}
	}
	return ""
}

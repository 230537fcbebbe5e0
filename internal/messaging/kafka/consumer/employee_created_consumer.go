package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-teamhub/internal/events"
	"go-teamhub/internal/shared/contextutil"
	walleterrors "go-teamhub/internal/wallet/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type WalletOpener interface {
	OpenInitialWallet(ctx context.Context, userID string) error
}

// ConsumeEmployeeLifecycle opens the first payroll wallet of every newly
// onboarded user.
func ConsumeEmployeeLifecycle(ctx context.Context, reader MessageReader, wallets WalletOpener, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			return fmt.Errorf("%w: %v", errSkip, err)
		}
		if event.EventType != "" && event.EventType != events.EmployeeCreatedType {
			return errSkip
		}

		ctx = contextutil.WithRequestID(ctx, requestIDHeader(msg))
		err := wallets.OpenInitialWallet(ctx, event.UserID)
		switch {
		case errors.Is(err, walleterrors.ErrActiveWalletExists):
			log.Warn("active wallet already exists, skipping", zap.String("user_id", event.UserID))
			return errSkip
		case errors.Is(err, walleterrors.ErrUserNotFound):
			log.Warn("onboarded user not found, skipping", zap.String("user_id", event.UserID))
			return errSkip
		case err != nil:
			return err
		}

		log.Info("initial wallet opened from employee_created event", zap.String("user_id", event.UserID))
		return nil
	})
}

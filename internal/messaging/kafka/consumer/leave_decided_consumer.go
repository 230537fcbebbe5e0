package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-teamhub/internal/events"
	"go-teamhub/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions emails the employee when a leave request is
// approved or rejected.
func ConsumeLeaveDecisions(ctx context.Context, reader MessageReader, mailer notification.Mailer, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.leave_decided")
	consume(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			return fmt.Errorf("%w: %v", errSkip, err)
		}

		mail, err := notification.LeaveDecisionEmail(event)
		if err != nil {
			log.Warn("cannot render leave decision email", zap.String("leave_id", event.LeaveID), zap.Error(err))
			return errSkip
		}
		if err := mailer.Send(ctx, mail); err != nil {
			return err
		}

		log.Info("leave decision email sent",
			zap.String("leave_id", event.LeaveID),
			zap.String("decision", event.Decision),
		)
		return nil
	})
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-teamhub/internal/events"
	"go-teamhub/internal/messaging/kafka/consumer"
	"go-teamhub/internal/notification"
	"go-teamhub/internal/shared/config"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupPrefix = "go-teamhub-"

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// RunConsumer opens wallets for onboarded users and emails leave decisions
// until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	inf, err := connectInfra(cfg, logger)
	if err != nil {
		return err
	}
	defer inf.Close()

	m, err := buildModules(inf, cfg, zap.L())
	if err != nil {
		return err
	}
	mailer := notification.NewMailer(cfg, zap.L())

	employeeReader := newReader(cfg.KafkaBroker, events.EmployeeCreatedTopic, "wallet")
	defer employeeReader.Close()
	leaveReader := newReader(cfg.KafkaBroker, events.LeaveDecidedTopic, "leave-notification")
	defer leaveReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, m.wallet, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeLeaveDecisions(ctx, leaveReader, mailer, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

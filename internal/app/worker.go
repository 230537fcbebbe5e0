package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-teamhub/internal/messaging/kafka"
	"go-teamhub/internal/messaging/kafka/producer"
	"go-teamhub/internal/scheduler"
	"go-teamhub/internal/shared/config"
	"go-teamhub/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker runs the scheduled jobs and relays the outbox to Kafka until
// SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

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

	if inf.rdb != nil {
		owner, _ := os.Hostname()
		m.jobs.WithLocker(scheduler.NewRedisLocker(inf.rdb, owner), cfg.SchedulerLockTTL)
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(inf.sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go m.jobs.Start(ctx)
	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

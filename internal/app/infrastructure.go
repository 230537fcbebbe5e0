package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-teamhub/internal/attendance"
	"go-teamhub/internal/leave"
	"go-teamhub/internal/messaging/kafka"
	"go-teamhub/internal/shared/clock"
	"go-teamhub/internal/shared/config"
	"go-teamhub/internal/shared/connection"
	"go-teamhub/internal/user"
	"go-teamhub/internal/wallet"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	clock  clock.Clock
}

// connectInfra opens Postgres and, when REDIS_ADDR is set, Redis.
func connectInfra(cfg config.Config, logger *zap.Logger) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	inf := &infrastructure{gormDB: gormDB, sqlDB: sqlDB, clock: clock.System(cfg.Location())}

	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, running without cache, idempotency and job locks")
		return inf, nil
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	inf.rdb = rdb
	return inf, nil
}

func (i *infrastructure) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	_ = i.sqlDB.Close()
}

func migrate(ctx context.Context, inf *infrastructure) error {
	if err := inf.gormDB.WithContext(ctx).AutoMigrate(
		&user.User{},
		&attendance.AttendanceRecord{},
		&wallet.Wallet{},
		&leave.LeaveRequest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := kafka.Migrate(ctx, inf.sqlDB); err != nil {
		return fmt.Errorf("outbox migrate: %w", err)
	}
	return nil
}

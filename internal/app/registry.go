package app

import (
	"go-teamhub/internal/attendance"
	"go-teamhub/internal/leave"
	"go-teamhub/internal/messaging/kafka"
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/rbac"
	"go-teamhub/internal/rbac/infra"
	"go-teamhub/internal/scheduler"
	"go-teamhub/internal/shared/config"
	"go-teamhub/internal/user"
	"go-teamhub/internal/wallet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type modules struct {
	rbac       rbac.Service
	attendance attendance.Service
	leave      leave.Service
	wallet     wallet.Service
	jobs       *scheduler.Registry
}

func buildModules(inf *infrastructure, cfg config.Config, logger *zap.Logger) (*modules, error) {
	// --- Repositories ---
	userRepo := user.NewRepository(inf.gormDB)
	attendanceRepo := attendance.NewRepository(inf.gormDB)
	leaveRepo := leave.NewRepository(inf.gormDB)
	walletRepo := wallet.NewRepository(inf.gormDB)
	outboxRepo := kafka.NewOutboxRepository(inf.sqlDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicy(), logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	leaveService := leave.NewService(inf.sqlDB, leaveRepo, userRepo, outboxRepo, inf.clock, logger)
	attendanceService := attendance.NewService(inf.sqlDB, attendanceRepo, userRepo, leaveService, inf.clock, logger)
	walletService := wallet.NewService(
		inf.sqlDB,
		walletRepo,
		userRepo,
		attendanceService,
		inf.clock,
		inf.rdb,
		cfg.CycleRolloverDay,
		logger,
	)

	// --- Jobs ---
	jobs := scheduler.NewRegistry(inf.clock, logger)
	if err := scheduler.RegisterDefaults(jobs, attendanceService, walletService); err != nil {
		return nil, err
	}

	return &modules{
		rbac:       rbacService,
		attendance: attendanceService,
		leave:      leaveService,
		wallet:     walletService,
		jobs:       jobs,
	}, nil
}

func registerRoutes(router *gin.Engine, m *modules, inf *infrastructure, cfg config.Config, logger *zap.Logger) {
	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(m.attendance, inf.rdb)
	leaveHandler := leave.NewHandler(m.leave, logger)
	walletHandler := wallet.NewHandler(m.wallet, inf.rdb)
	jobHandler := scheduler.NewHandler(m.jobs, logger)
	rbacHandler := rbac.NewHandler(m.rbac)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.ExtractUserID())
	{
		attendance.RegisterRoutes(protected, attendanceHandler, m.rbac, inf.rdb)
		wallet.RegisterRoutes(protected, walletHandler, m.rbac, inf.rdb)
		leave.RegisterRoutes(protected, leaveHandler, m.rbac)
		scheduler.RegisterRoutes(protected, jobHandler, m.rbac)
		rbac.RegisterRoutes(protected, rbacHandler, m.rbac)
	}
}

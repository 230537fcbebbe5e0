package app

import (
	"context"

	"go-teamhub/internal/middleware"
	"go-teamhub/internal/shared/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema and mounts every module
// on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app.api")

	inf, err := connectInfra(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := migrate(context.Background(), inf); err != nil {
		inf.Close()
		return nil, err
	}

	m, err := buildModules(inf, cfg, zap.L())
	if err != nil {
		inf.Close()
		return nil, err
	}

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	registerRoutes(router, m, inf, cfg, zap.L())

	logger.Info("modules registered", zap.Int("jobs", len(m.jobs.Jobs())))
	return inf.Close, nil
}

package bootstrap

import (
	"go-teamhub/internal/shared/config"

	"go.uber.org/zap"
)

// NewLogger builds a production JSON logger when APP_ENV=production and a
// development console logger otherwise, and installs it as the global one.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

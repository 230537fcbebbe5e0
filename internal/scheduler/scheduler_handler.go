package scheduler

import (
	"context"
	"errors"
	"net/http"

	"go-teamhub/internal/shared/contextutil"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Runner interface {
	RunNow(ctx context.Context, name string) (RunResult, error)
}

type Handler struct {
	runner Runner
	logger *zap.Logger
}

func NewHandler(runner Runner, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("scheduler.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.handler")
	}
	return &Handler{runner: runner, logger: l}
}

func (h *Handler) Run(c *gin.Context) {
	name := c.Param("name")
	log := contextutil.GetLogger(c.Request.Context(), h.logger)

	result, err := h.runner.RunNow(c.Request.Context(), name)
	if err != nil {
		if !errors.Is(err, ErrJobFailed) {
			response.FromError(c, err)
			return
		}
		log.Error("manual job run failed", zap.String("job", name), zap.Error(err))
		response.Error(c, ErrJobFailed.HTTPStatus, ErrJobFailed.Code, ErrJobFailed.Message, result)
		return
	}

	log.Info("manual job run", zap.String("job", name))
	response.Success(c, http.StatusOK, result, nil)
}

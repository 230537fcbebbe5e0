package wallet

import (
	"context"
	"net/http"

	"go-teamhub/internal/middleware"
	"go-teamhub/internal/shared/apperror"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	response.FromError(c, err)
}

func (h *Handler) MonthSalary(c *gin.Context) {
	h.userAmount(c, h.service.MonthSalary)
}

func (h *Handler) DailyRate(c *gin.Context) {
	h.userAmount(c, h.service.DailyRate)
}

func (h *Handler) DeductionAmount(c *gin.Context) {
	h.userAmount(c, h.service.DeductionAmount)
}

func (h *Handler) userAmount(c *gin.Context, op func(ctx context.Context, userID string) (decimal.Decimal, error)) {
	userID := c.Param("userId")
	amount, err := op(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AmountResponse{UserID: userID, Amount: amount}, nil)
}

func (h *Handler) TotalSalary(c *gin.Context) {
	h.total(c, h.service.TotalSalary)
}

func (h *Handler) TotalDeduction(c *gin.Context) {
	h.total(c, h.service.TotalDeduction)
}

func (h *Handler) NetPayable(c *gin.Context) {
	h.total(c, h.service.NetPayable)
}

func (h *Handler) total(c *gin.Context, op func(ctx context.Context) (decimal.Decimal, error)) {
	amount, err := op(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AmountResponse{Amount: amount}, nil)
}

func (h *Handler) Details(c *gin.Context) {
	resp, err := h.service.Details(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddDeduction(c *gin.Context) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	var req DeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.AddDeduction(c.Request.Context(), c.Param("empid"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	middleware.CacheIdempotentResponse(c, h.rdb, result)
	response.Success(c, http.StatusOK, result, nil)
}

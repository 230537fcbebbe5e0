package attendance

import (
	"context"
	"net/http"
	"strconv"

	"go-teamhub/internal/middleware"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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

func (h *Handler) Login(c *gin.Context) {
	h.record(c, h.service.Login)
}

func (h *Handler) Logout(c *gin.Context) {
	h.record(c, h.service.Logout)
}

func (h *Handler) record(c *gin.Context, op func(ctx context.Context, userID string) (Outcome, error)) {
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	outcome, err := op(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	middleware.CacheIdempotentResponse(c, h.rdb, outcome)
	response.Success(c, http.StatusOK, outcome, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	resp, err := h.service.GetToday(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PresentDays(c *gin.Context) {
	h.count(c, StatusPresent, h.service.CountPresent)
}

func (h *Handler) AbsentDays(c *gin.Context) {
	h.count(c, StatusAbsent, h.service.CountAbsent)
}

func (h *Handler) HalfDays(c *gin.Context) {
	h.count(c, StatusHalfDay, h.service.CountHalfDay)
}

func (h *Handler) LateDays(c *gin.Context) {
	h.count(c, "LATE", h.service.CountLate)
}

func (h *Handler) count(c *gin.Context, status string, op func(ctx context.Context, userID string) (int64, error)) {
	userID := c.Param("userId")
	n, err := op(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CountResponse{UserID: userID, Status: status, Count: n}, nil)
}

func (h *Handler) PresentToday(c *gin.Context) {
	resp, err := h.service.CountPresentToday(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ListAll returns every matching record; page and page_size are optional.
func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.ListAll(c.Request.Context(), c.Query("search"), c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if c.Query("page_size") == "" {
		response.Success(c, http.StatusOK, resp, nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

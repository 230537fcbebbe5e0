package attendance

import (
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterRoutes expects r to be behind AuthMiddleware and ExtractUserID.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	owner := func(anyAction string) gin.HandlerFunc {
		return middleware.RBACAuthorizeOwner(rbacService, rbac.ResourceAttendance, rbac.ActionSelf, anyAction, "userId")
	}
	limited := middleware.RateLimitByUser(rate.Limit(1), 5)

	attendance := r.Group("/attendance")
	{
		attendance.POST("/login/:userId", limited, owner(rbac.ActionManage), middleware.Idempotency(rdb), h.Login)
		attendance.PUT("/logout/:userId", limited, owner(rbac.ActionManage), middleware.Idempotency(rdb), h.Logout)

		attendance.GET("/today/:userId", owner(rbac.ActionReadAll), h.GetToday)
		attendance.GET("/history/:userId", owner(rbac.ActionReadAll), h.History)
		attendance.GET("/presentdays/:userId", owner(rbac.ActionReadAll), h.PresentDays)
		attendance.GET("/absentdays/:userId", owner(rbac.ActionReadAll), h.AbsentDays)
		attendance.GET("/halfdays/:userId", owner(rbac.ActionReadAll), h.HalfDays)
		attendance.GET("/late/:userId", owner(rbac.ActionReadAll), h.LateDays)
		attendance.GET("/present-today", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReadAll), h.PresentToday)
		attendance.GET("/all", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReadAll), h.ListAll)
	}
}

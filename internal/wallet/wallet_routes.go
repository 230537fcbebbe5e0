package wallet

import (
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RegisterRoutes expects r to be behind AuthMiddleware and ExtractUserID.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	owner := middleware.RBACAuthorizeOwner(rbacService, rbac.ResourceSalary, rbac.ActionSelf, rbac.ActionReadAll, "userId")
	readAll := middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionReadAll)

	salary := r.Group("/salary")
	{
		salary.GET("/monthsalary/:userId", owner, h.MonthSalary)
		salary.GET("/dailyrate/:userId", owner, h.DailyRate)
		salary.GET("/salary-details/:userId", owner, h.Details)
		salary.GET("/deduction/:userId", owner, h.DeductionAmount)

		salary.GET("/totalsalary", readAll, h.TotalSalary)
		salary.GET("/netpayable", readAll, h.NetPayable)
		salary.GET("/totaldeduction", readAll, h.TotalDeduction)
		salary.GET("/all", readAll, h.ListAll)

		salary.PUT("/deduction/:empid",
			middleware.RateLimitByUser(rate.Limit(2), 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionDeduct),
			middleware.Idempotency(rdb),
			h.AddDeduction,
		)
	}
}

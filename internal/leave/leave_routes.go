package leave

import (
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be behind AuthMiddleware and ExtractUserID.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionApply), handler.Apply)
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReadAll), handler.List)
		leaves.GET("/on-leave-today", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReadAll), handler.OnLeaveToday)
		leaves.GET("/user/:userId",
			middleware.RBACAuthorizeOwner(rbacService, rbac.ResourceLeave, rbac.ActionSelf, rbac.ActionReadAll, "userId"),
			handler.ListByUser,
		)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide), handler.Reject)
	}
}

package rbac

import (
	"go-teamhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be behind AuthMiddleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, ResourceRBAC, ActionRead), h.Enforce)
		group.GET("/roles", middleware.RBACAuthorize(service, ResourceRBAC, ActionRead), h.ListRoles)
	}
}

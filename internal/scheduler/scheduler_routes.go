package scheduler

import (
	"go-teamhub/internal/middleware"
	"go-teamhub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	jobs := r.Group("/admin/jobs")
	jobs.POST("/:name/run", middleware.RBACAuthorize(rbacService, rbac.ResourceJob, rbac.ActionRun), h.Run)
}

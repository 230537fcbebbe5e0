package middleware

import (
	"go-teamhub/internal/domain"
	"go-teamhub/internal/shared/apperror"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer an enforce request.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := enforce(c, service, resource, action)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !allowed {
			response.Abort(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RBACAuthorizeOwner admits callers holding anyAction on resource, and
// callers holding ownAction when the route parameter param is their own
// user id.
func RBACAuthorizeOwner(service RBACService, resource, ownAction, anyAction, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := enforce(c, service, resource, anyAction)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !allowed && c.Param(param) == c.GetString("user_id") {
			allowed, err = enforce(c, service, resource, ownAction)
			if err != nil {
				response.Abort(c, err)
				return
			}
		}
		if !allowed {
			response.Abort(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

func enforce(c *gin.Context, service RBACService, resource, action string) (bool, error) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	if userID == "" || role == "" {
		return false, apperror.ErrUnauthorized
	}
	return service.Enforce(domain.EnforceRequest{
		UserID:   userID,
		Role:     role,
		Resource: resource,
		Action:   action,
	})
}

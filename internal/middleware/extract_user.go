package middleware

import (
	"go-teamhub/internal/shared/apperror"
	"go-teamhub/internal/shared/contextutil"
	"go-teamhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractUserID copies the authenticated user id into "user_id_validated"
// and into the request context, enriching the request logger with it.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Abort(c, apperror.ErrUnauthorized)
			return
		}
		c.Set("user_id_validated", userID)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("actor_id", userID))
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

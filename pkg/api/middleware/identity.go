package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/autotune/pkg/api/dto"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/pipeline"
)

// Identity 身份解析中间件
// 从User-Id与Role请求头解析调用方身份，失败时返回401等状态
func Identity(identities *pipeline.IdentityCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("User-Id")
		role := c.GetHeader("Role")

		user, err := identities.Resolve(c.Request.Context(), token, role)
		if err != nil {
			log.Printf("[Identity] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.JSON(errs.HTTPStatus(err), dto.NewErrorResponse(err.Error()))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

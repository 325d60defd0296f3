package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LENAX/autotune/pkg/api/dto"
	"github.com/LENAX/autotune/pkg/core/errs"
	"github.com/LENAX/autotune/pkg/core/identity"
	"github.com/LENAX/autotune/pkg/core/pipeline"
)

// CacheDataset 数据集缓存管线中间件
// 绑定工作流、校验任务模式并解析数据集，结果写入gin上下文
// 必须位于Identity之后
func CacheDataset(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("user ID must be provided"))
			c.Abort()
			return
		}

		var req dto.CacheDatasetRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request parameters: "+err.Error()))
			c.Abort()
			return
		}

		res, err := p.Resolve(c.Request.Context(), user.ID, req.TaskType, req.Dataset)
		if err != nil {
			log.Printf("[CacheDataset] user=%s task_type=%s dataset=%s: %v",
				user.ID, req.TaskType, req.Dataset, err)
			c.JSON(errs.HTTPStatus(err), dto.NewErrorResponse(err.Error()))
			c.Abort()
			return
		}

		c.Set(ContextWorkflowIDKey, res.WorkflowID)
		c.Set(ContextDatasetIDKey, res.DatasetID)
		c.Set(ContextWorkflowCreatedKey, res.WorkflowCreated)
		c.Next()
	}
}

// CurrentUser 从gin上下文取出已解析的身份
func CurrentUser(c *gin.Context) (*identity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*identity.User)
	return user, ok
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/LENAX/autotune/pkg/api/handler"
	"github.com/LENAX/autotune/pkg/api/middleware"
	"github.com/LENAX/autotune/pkg/core/pipeline"
)

// SetupRouter 设置路由
func SetupRouter(p *pipeline.Pipeline, repos pipeline.Repositories, version string) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 全局中间件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// 创建handlers
	workflowHandler := handler.NewWorkflowHandler(repos)
	dataHandler := handler.NewDataHandler(repos)
	healthHandler := handler.NewHealthHandler(version)

	// 健康检查路由（不带前缀）
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 路由组，所有业务路由要求身份解析
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(p.Identities))
	{
		// Workflow路由
		workflows := v1.Group("/workflows")
		{
			workflows.GET("", workflowHandler.List)
			workflows.POST("", middleware.CacheDataset(p), workflowHandler.Create)
			workflows.GET("/:id", workflowHandler.Get)
			workflows.PUT("/:id/status", workflowHandler.UpdateStatus)
			workflows.DELETE("/:id", workflowHandler.Delete)
		}

		// 数据行路由，经过缓存管线解析数据集
		v1.GET("/data", middleware.CacheDataset(p), dataHandler.Rows)
	}

	return router
}

package app

import (
	"wordquiz_backend/docs"
	"wordquiz_backend/internal/config"
	"wordquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/modules", c.catalog.ListModules)

		// 每个题库模块一组测验路由
		module := api.Group("/modules/:slug")
		{
			module.POST("/quiz/start", c.quiz.StartQuiz)
			module.GET("/quiz/question/:sessionId/:index", c.quiz.GetQuestion)
			module.POST("/quiz/answer", c.quiz.SubmitAnswer)
			module.GET("/quiz/summary/:sessionId", c.quiz.GetSummary)
		}

		// 第一个模块的历史别名路由，老客户端直接打根路径
		api.POST("/quiz/start", c.quiz.StartQuiz)
		api.GET("/quiz/question/:sessionId/:index", c.quiz.GetQuestion)
		api.POST("/quiz/answer", c.quiz.SubmitAnswer)
		api.GET("/quiz/summary/:sessionId", c.quiz.GetSummary)

		api.POST("/admin/audio", c.audio.UploadAudio)
	}
}

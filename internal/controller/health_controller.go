package controller

import (
	"wordquiz_backend/internal/repository"
	"wordquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Catalogs *repository.CatalogRepository
	Sessions *repository.SessionRepository
}

func NewHealthController(catalogs *repository.CatalogRepository, sessions *repository.SessionRepository) *HealthController {
	return &HealthController{Catalogs: catalogs, Sessions: sessions}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"catalogs":        len(c.Catalogs.List()),
			"active_sessions": c.Sessions.Len(),
		},
	})
}

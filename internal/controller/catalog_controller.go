package controller

import (
	"wordquiz_backend/internal/repository"
	"wordquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalogs *repository.CatalogRepository
}

func NewCatalogController(catalogs *repository.CatalogRepository) *CatalogController {
	return &CatalogController{Catalogs: catalogs}
}

// @Summary 入口页题库模块列表
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/modules [get]
func (c *CatalogController) ListModules(ctx *gin.Context) {
	util.Success(ctx, gin.H{"modules": c.Catalogs.List()})
}

package controller

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"wordquiz_backend/internal/service"
	"wordquiz_backend/internal/util"
	"wordquiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AudioController struct {
	Storage *service.StorageService
}

func NewAudioController(storage *service.StorageService) *AudioController {
	return &AudioController{Storage: storage}
}

var allowedAudioTypes = []string{"audio/", "application/ogg", "application/octet-stream"}

// stageTempFile 把上传内容落到唯一的临时路径。
// 并发上传可能带同名文件，路径不能由文件名推导。
func stageTempFile(ctx *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp("", "audio-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	tmp.Close()

	if err := ctx.SaveUploadedFile(fileHeader, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// @Summary 上传发音音频片段
// @Description 上传一段发音音频到音频库，文件名需符合题库引用约定（如 q1_answer.mp3）
// @Tags 音频
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "音频文件"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/audio [post]
func (c *AudioController) UploadAudio(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	mimeType, err := util.ValidateMimeType(src, allowedAudioTypes)
	if err != nil {
		src.Close()
		util.BadRequest(ctx, err.Error())
		return
	}
	src.Close()

	// ffprobe 需要落盘文件，先存到临时路径做健全性检查
	tmp, err := stageTempFile(ctx, fileHeader)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp)

	info, err := util.GetAudioInfo(tmp)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	f, err := os.Open(tmp)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	filename := filepath.Base(fileHeader.Filename)
	url, err := c.Storage.Provider.Upload(ctx.Request.Context(), filename, f, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("audio uploaded",
		zap.String("filename", filename),
		zap.Float64("duration", info.Duration),
		zap.String("format", info.Format))

	util.Created(ctx, gin.H{
		"url":      url,
		"duration": info.Duration,
		"format":   info.Format,
	})
}

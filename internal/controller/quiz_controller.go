package controller

import (
	"errors"
	"net/http"
	"strconv"
	"wordquiz_backend/internal/service"
	"wordquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
	// DefaultSlug 根路由的历史别名绑定的模块
	DefaultSlug string
}

func NewQuizController(svc *service.QuizService, defaultSlug string) *QuizController {
	return &QuizController{Service: svc, DefaultSlug: defaultSlug}
}

type StartQuizRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	NQuestions int    `json:"n_questions"`
}

type AnswerRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	QuestionID     int    `json:"question_id" binding:"required"`
	SelectedOption int    `json:"selected_option" binding:"required"`
}

func (c *QuizController) slug(ctx *gin.Context) string {
	if slug := ctx.Param("slug"); slug != "" {
		return slug
	}
	return c.DefaultSlug
}

func (c *QuizController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrCatalogNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNoQuestions):
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	case errors.Is(err, util.ErrSessionFinished),
		errors.Is(err, util.ErrIndexOutOfRange),
		errors.Is(err, util.ErrInvalidSessionIndex),
		errors.Is(err, util.ErrOrderMismatch),
		errors.Is(err, util.ErrQuestionNotPrepared),
		errors.Is(err, util.ErrInvalidOption):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 开始一次测验会话
// @Tags 测验
// @Accept json
// @Produce json
// @Param slug path string true "模块"
// @Param body body StartQuizRequest true "用户和题数"
// @Success 200 {object} util.Response{data=service.StartQuizResult}
// @Router /api/modules/{slug}/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	var req StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.StartQuiz(c.slug(ctx), req.UserID, req.NQuestions)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 按位置获取题目（只给选项号和音频，不给文字）
// @Tags 测验
// @Produce json
// @Param slug path string true "模块"
// @Param sessionId path string true "会话ID"
// @Param index path int true "题目位置，从0开始"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Router /api/modules/{slug}/quiz/question/{sessionId}/{index} [get]
func (c *QuizController) GetQuestion(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid index")
		return
	}

	view, err := c.Service.GetQuestion(c.slug(ctx), ctx.Param("sessionId"), index)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 提交当前题的答案
// @Description 只接受当前位置指向的题目，提交其它题目ID会被拒绝
// @Tags 测验
// @Accept json
// @Produce json
// @Param slug path string true "模块"
// @Param body body AnswerRequest true "作答"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Router /api/modules/{slug}/quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAnswer(c.slug(ctx), req.SessionID, req.QuestionID, req.SelectedOption)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 会话汇总
// @Tags 测验
// @Produce json
// @Param slug path string true "模块"
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SummaryResult}
// @Router /api/modules/{slug}/quiz/summary/{sessionId} [get]
func (c *QuizController) GetSummary(ctx *gin.Context) {
	summary, err := c.Service.Summary(c.slug(ctx), ctx.Param("sessionId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

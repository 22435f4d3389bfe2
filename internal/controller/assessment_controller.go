package controller

import (
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	assessmentFailedMessage      = "Could not generate an assessment. Please try again."
	recommendationsFailedMessage = "Could not generate recommendations. Please try again."
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// RecommendationsRequest 测评完成后请求学习建议
// swagger:model RecommendationsRequest
type RecommendationsRequest struct {
	AssessmentTitle string `json:"assessmentTitle"`
	Score           int    `json:"score"`
	Total           int    `json:"total"`
}

// Generate godoc
// @Summary 生成测评
// @Description 根据已保存的学习目标生成 5 道单选题，每次调用都会重新生成
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Assessment} "成功"
// @Failure 412 {object} util.Response "未设置学习目标"
// @Failure 502 {object} util.Response "生成失败"
// @Router /api/assessment [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	assessment, err := c.AssessmentService.Generate(ctx.Request.Context(), claims.Owner)
	if err != nil {
		util.HandleError(ctx, err, assessmentFailedMessage)
		return
	}

	util.Success(ctx, assessment)
}

// Submit godoc
// @Summary 提交测评
// @Description 所有题目作答后计算得分并返回逐题结果
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.AssessmentSubmission true "测评及作答"
// @Success 200 {object} util.Response{data=model.AssessmentResult} "成功"
// @Failure 400 {object} util.Response "未完成所有题目"
// @Router /api/assessment/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var submission model.AssessmentSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Grade(submission)
	if err != nil {
		util.HandleError(ctx, err, "")
		return
	}

	util.Success(ctx, result)
}

// Recommendations godoc
// @Summary 学习建议
// @Description 根据测评得分生成 3-5 条学习建议
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RecommendationsRequest true "测评得分"
// @Success 200 {object} util.Response{data=model.Recommendations} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 412 {object} util.Response "未设置学习目标"
// @Failure 502 {object} util.Response "生成失败"
// @Router /api/assessment/recommendations [post]
func (c *AssessmentController) Recommendations(ctx *gin.Context) {
	var req RecommendationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	recs, err := c.AssessmentService.Recommend(ctx.Request.Context(), claims.Owner, req.AssessmentTitle, req.Score, req.Total)
	if err != nil {
		util.HandleError(ctx, err, recommendationsFailedMessage)
		return
	}

	util.Success(ctx, recs)
}

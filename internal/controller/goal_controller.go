package controller

import (
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	planFailedMessage    = "Could not generate a learning plan. Please try again."
	suggestFailedMessage = "Could not suggest skills. Please try again."
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// GetGoals godoc
// @Summary 获取学习目标
// @Description 返回已保存的学习目标；未保存时返回表单默认值和选项
// @Tags 学习目标
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.GoalsView} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/goals [get]
func (c *GoalController) GetGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.GoalService.GetGoals(ctx.Request.Context(), claims.Owner)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// SaveGoals godoc
// @Summary 保存学习目标并重新生成学习计划
// @Description 目标先保存；学习计划生成失败时目标依然保留
// @Tags 学习目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.GoalProfile true "学习目标"
// @Success 200 {object} util.Response{data=model.LearningPlan} "成功"
// @Failure 400 {object} util.Response "表单校验失败"
// @Failure 502 {object} util.Response "学习计划生成失败"
// @Router /api/goals [put]
func (c *GoalController) SaveGoals(ctx *gin.Context) {
	var goals model.GoalProfile
	if err := ctx.ShouldBindJSON(&goals); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	plan, err := c.GoalService.SaveGoals(ctx.Request.Context(), claims.Owner, goals)
	if err != nil {
		util.HandleError(ctx, err, planFailedMessage)
		return
	}

	util.Success(ctx, gin.H{
		"plan":     plan,
		"message":  "Your personalized learning path has been regenerated.",
		"redirect": util.RouteDashboard,
	})
}

// SuggestSkills godoc
// @Summary 推荐技能关键词
// @Description 根据职业目标生成 5-10 个技能关键词
// @Tags 学习目标
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.SkillKeywordsInput true "职业目标"
// @Success 200 {object} util.Response{data=service.SkillSuggestion} "成功"
// @Failure 400 {object} util.Response "职业目标过短"
// @Failure 502 {object} util.Response "生成失败"
// @Router /api/goals/suggest-skills [post]
func (c *GoalController) SuggestSkills(ctx *gin.Context) {
	var req model.SkillKeywordsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	suggestion, err := c.GoalService.SuggestSkills(ctx.Request.Context(), req.CareerGoal)
	if err != nil {
		util.HandleError(ctx, err, suggestFailedMessage)
		return
	}

	util.Success(ctx, suggestion)
}

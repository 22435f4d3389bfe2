package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	StateService *service.StateService
}

func NewAdminController(stateService *service.StateService) *AdminController {
	return &AdminController{StateService: stateService}
}

// ResetUserState godoc
// @Summary 清空用户状态
// @Description 删除指定邮箱下的全部状态（账号、会话、目标和学习计划）
// @Tags 管理员
// @Produce  json
// @Security BearerAuth
// @Param   email query string true "用户邮箱"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "缺少邮箱"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/users/state [delete]
func (c *AdminController) ResetUserState(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		util.BadRequest(ctx, "email is required")
		return
	}

	if err := c.StateService.Clear(ctx.Request.Context(), service.OwnerID(email)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"email": email})
}

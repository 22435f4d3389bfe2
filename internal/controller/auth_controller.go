package controller

import (
	"errors"
	"net/http"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱、密码和角色注册账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body model.RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req model.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.Register(ctx.Request.Context(), req); err != nil {
		util.HandleError(ctx, err, "")
		return
	}

	util.Created(ctx, gin.H{
		"message":  "Registration successful. Please log in.",
		"redirect": util.RouteLogin,
	})
}

// Login godoc
// @Summary 用户登录
// @Description 校验邮箱和密码，返回 JWT 并建立会话
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body model.LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.LoginResult} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req model.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err, "")
		return
	}

	util.Success(ctx, result)
}

// Logout godoc
// @Summary 退出登录
// @Description 删除会话标记，当前 token 随之失效
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), claims.Owner); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"redirect": util.RouteLogin})
}

// ForgotPassword godoc
// @Summary 忘记密码
// @Description 根据邮箱生成重置密码的操作指引
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body model.PasswordResetInput true "邮箱"
// @Success 200 {object} util.Response{data=model.PasswordResetState} "成功"
// @Failure 400 {object} util.Response{data=model.PasswordResetState} "邮箱格式错误"
// @Failure 502 {object} util.Response{data=model.PasswordResetState} "生成失败"
// @Router /api/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req model.PasswordResetInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := c.AuthService.ForgotPassword(ctx.Request.Context(), req.Email)
	if err != nil {
		code := http.StatusBadGateway
		var verr *util.ValidationError
		if errors.As(err, &verr) {
			code = http.StatusBadRequest
		} else if !errors.Is(err, util.ErrGenerationFailed) {
			code = http.StatusInternalServerError
		}
		util.ErrorWithData(ctx, code, state.Message, state)
		return
	}

	util.Success(ctx, state)
}

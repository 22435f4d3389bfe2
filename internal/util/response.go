package util

import (
	"errors"
	"net/http"
	"skillpath_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Unauthorized(c *gin.Context) {
	ErrorWithData(c, http.StatusUnauthorized, "Unauthorized", gin.H{"redirect": RouteLogin})
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// ValidationFailed 表单校验失败，按字段返回错误信息
func ValidationFailed(c *gin.Context, verr *ValidationError) {
	ErrorWithData(c, http.StatusBadRequest, verr.Error(), gin.H{"fields": verr.Fields})
}

// PreconditionFailed 缺少前置数据时提示前端跳转
func PreconditionFailed(c *gin.Context, message, redirect string) {
	ErrorWithData(c, http.StatusPreconditionFailed, message, gin.H{"redirect": redirect})
}

// GenerationFailed 生成服务失败，只给出通用的重试提示
func GenerationFailed(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c)
}

// HandleError 按错误类型映射到响应，genericMessage 用于生成失败时的提示
func HandleError(c *gin.Context, err error, genericMessage string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr)
	case errors.Is(err, ErrPreconditionMissing):
		PreconditionFailed(c, "Set your goals first. You need to set your learning goals before continuing.", RouteGoals)
	case errors.Is(err, ErrSessionExpired):
		Unauthorized(c)
	case errors.Is(err, ErrGenerationFailed):
		GenerationFailed(c, genericMessage)
	case errors.Is(err, ErrIncompleteAssessment):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	default:
		LogInternalError(c, err)
	}
}

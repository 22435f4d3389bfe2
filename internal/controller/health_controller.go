package controller

import (
	"context"
	"net/http"
	"skillpath_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController Ping 为 nil 时（内存存储）只报告进程状态
type HealthController struct {
	Driver string
	Ping   func(ctx context.Context) error
}

func NewHealthController(driver string, ping func(ctx context.Context) error) *HealthController {
	return &HealthController{Driver: driver, Ping: ping}
}

// @Summary 健康检查
// @Description 检查服务和状态存储
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if c.Ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.Ping(pingCtx); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "State store unavailable")
			return
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"persistence": c.Driver,
		},
	})
}

package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// Search godoc
// @Summary 社区目录
// @Description 按关键字过滤成员和讨论组，不传 q 返回全部
// @Tags 社区
// @Produce  json
// @Param   q query string false "关键字"
// @Success 200 {object} util.Response{data=model.CommunityDirectory} "成功"
// @Router /api/community [get]
func (c *CommunityController) Search(ctx *gin.Context) {
	util.Success(ctx, c.CommunityService.Search(ctx.Query("q")))
}

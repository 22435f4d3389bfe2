package controller

import (
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const courseFailedMessage = "Could not generate course content. Please try again."

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// GetCourse godoc
// @Summary 课程内容
// @Description 根据学习目标推荐 3 个视频和 3 个网页资源，可选检查链接是否可访问
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.CourseContent} "成功"
// @Failure 412 {object} util.Response "未设置学习目标"
// @Failure 502 {object} util.Response "生成失败"
// @Router /api/course [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	content, err := c.CourseService.Generate(ctx.Request.Context(), claims.Owner)
	if err != nil {
		util.HandleError(ctx, err, courseFailedMessage)
		return
	}

	util.Success(ctx, content)
}

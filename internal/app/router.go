package app

import (
	"skillpath_backend/docs"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/internal/model"
	"skillpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录且会话有效的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config, s.auth))
	{
		a.registerLearnerRoutes(authGroup, c)

		// 3. 管理员相关接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.DELETE("/users/state", c.admin.ResetUserState)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/forgot-password", c.auth.ForgotPassword)
		public.GET("/community", c.community.Search)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/logout", c.auth.Logout)

	goals := group.Group("/goals")
	{
		goals.GET("", c.goal.GetGoals)
		goals.PUT("", c.goal.SaveGoals)
		goals.POST("/suggest-skills", c.goal.SuggestSkills)
	}

	group.GET("/dashboard", c.dashboard.GetDashboard)

	assessment := group.Group("/assessment")
	{
		assessment.POST("", c.assessment.Generate)
		assessment.POST("/submit", c.assessment.Submit)
		assessment.POST("/recommendations", c.assessment.Recommendations)
	}

	group.GET("/course", c.course.GetCourse)
}

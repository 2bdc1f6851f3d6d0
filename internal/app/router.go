package app

import (
	"course_quest_backend/docs"
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/middleware"
	"course_quest_backend/internal/util"
	"course_quest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(util.MethodNotAllowed)
	router.NoRoute(util.NotFound)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	api := router.Group("/api")

	// 1. 公共路由
	a.registerAccountRoutes(api, c)
	a.registerCourseRoutes(api, c, cfg)

	api.POST("/achievements", c.achievement.SeedAchievements)
}

func (a *App) registerAccountRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)
	api.GET("/profile", c.user.GetProfile)

	api.PUT("/users/:id/edit", c.user.UpdateUser)
	api.POST("/users/:id/edit", c.user.UpdateUser)
	api.DELETE("/delete_user/:id", c.user.DeleteUser)
	api.GET("/users/:id/notifications", c.user.GetNotifications)
	api.GET("/users/:id/level-history", c.user.GetLevelHistory)
	api.GET("/users/:id/achievements-view", c.user.GetAchievements)
	api.GET("/user/:id/courses", c.user.GetEnrolledCourses)
}

func (a *App) registerCourseRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	api.GET("/courses", c.course.ListCourses)
	api.GET("/course/:id", c.course.GetCourse)
	// 携带 token 时记录作者
	api.POST("/courses/create", middleware.TryAuthMiddleware(cfg), c.course.CreateCourse)
	api.POST("/courses/:id/enroll", c.course.Enroll)
	api.GET("/courses/users", c.quiz.Ranking)
	api.GET("/courses/:id/questions", c.course.GetQuestions)
	api.POST("/courses/:id/check-answers", c.quiz.CheckAnswers)
	api.POST("/courses/:id/forms/create", c.course.CreateForm)
	api.GET("/courses/:id/forms", c.course.ListForms)
	api.POST("/forms/:id/questions/add", c.course.AddQuestion)
	api.POST("/questions/:id/options/add", c.course.AddOption)

	// 2. 需要登录：修改和删除课程
	authorized := api.Group("/courses")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.PUT("/:id/edit", c.course.UpdateCourse)
		authorized.PATCH("/:id/edit", c.course.UpdateCourse)
		authorized.DELETE("/:id", c.course.DeleteCourse)
	}
}

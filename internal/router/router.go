package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/internal/handlers"
	"github.com/monocle-dev/taskboard/internal/metrics"
	"github.com/monocle-dev/taskboard/internal/middleware"
)

func NewRouter(allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		protected := api.Group("", middleware.AuthMiddleware())

		projects := protected.Group("/projects")
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/:id", handlers.GetProject)
			projects.PUT("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)

			projects.GET("/:id/members", handlers.ListMembers)
			projects.POST("/:id/members", handlers.AddMember)
			projects.PUT("/:id/members/:member_id", handlers.UpdateMember)
			projects.DELETE("/:id/members/:member_id", handlers.RemoveMember)

			projects.GET("/:id/activity", handlers.ProjectActivity)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", handlers.ListTasks)
			tasks.POST("", handlers.CreateTask)
			tasks.GET("/create-form-data", handlers.TaskFormData)
			tasks.GET("/:id", handlers.GetTask)
			tasks.PUT("/:id", handlers.UpdateTask)
			tasks.DELETE("/:id", handlers.DeleteTask)

			tasks.GET("/:id/assignments", handlers.ListAssignments)
			tasks.POST("/:id/assignments", handlers.AssignUser)
			tasks.DELETE("/:id/assignments/:assignment_id", handlers.UnassignUser)
		}

		protected.GET("/task-stats", handlers.TaskStats)
		protected.GET("/upcoming-tasks", handlers.UpcomingTasks)
		protected.GET("/activity", handlers.RecentActivity)
	}

	return r
}

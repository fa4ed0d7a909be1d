package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mihaimoje/aihack-2025-NeuroCore/controllers"
	"github.com/mihaimoje/aihack-2025-NeuroCore/middleware"
	"github.com/mihaimoje/aihack-2025-NeuroCore/models"
)

func SetupRoutes(router *gin.RouterGroup) {
	router.POST("/signup", controllers.Signup())
	router.POST("/login", controllers.Login())

	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		// Current user (all authenticated)
		protected.GET("/me", controllers.GetMe())

		// ADMIN only
		protected.GET("/users",
			middleware.Authorize(models.RoleAdmin),
			controllers.GetUsers(),
		)
		protected.POST("/github-activity",
			middleware.Authorize(models.RoleAdmin),
			controllers.UpsertGithubActivity(),
		)

		// USER (self) + MANAGER + ADMIN
		protected.GET("/user/:id", controllers.GetUser())

		// Projects and teams
		protected.POST("/projects",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.CreateProject(),
		)
		protected.GET("/projects", controllers.GetProjects())
		protected.GET("/projects/:id", controllers.GetProject())
		protected.POST("/teams",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.CreateTeam(),
		)
		protected.GET("/teams", controllers.GetMyTeams())

		// Tasks
		protected.POST("/tasks",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.CreateTask(),
		)
		protected.GET("/tasks", controllers.GetTasks())
		protected.PATCH("/tasks/:id/status", controllers.UpdateTaskStatus())
		protected.GET("/tasks/smart-sort", controllers.SmartSortTasks())

		// Notifications (polled)
		protected.GET("/notifications", controllers.GetMyNotifications())
		protected.PATCH("/notifications/:id/read", controllers.MarkNotificationRead())

		// Burnout engine
		protected.GET("/burnout/me", controllers.GetMyBurnoutScore())
		protected.GET("/burnout/user/:id",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.GetBurnoutScore(),
		)
		protected.GET("/burnout/team",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.GetTeamBurnout(),
		)
		protected.GET("/burnout/team/daily-hours",
			middleware.Authorize(models.RoleManager, models.RoleAdmin),
			controllers.GetTeamDailyHours(),
		)
	}
}

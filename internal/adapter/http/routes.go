package http

import (
	"github.com/gin-gonic/gin"

	"todoapp/internal/adapter/http/handlers"
	"todoapp/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, authSecret string, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, projectHandler *handlers.ProjectHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authSecret))
	{
		authed.GET("/tasks", taskHandler.ListTasks)
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.GET("/tasks/stats", taskHandler.TaskStats)
		authed.PATCH("/tasks/reorder", taskHandler.ReorderTasks)
		authed.DELETE("/tasks/completed", taskHandler.ClearCompleted)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.PATCH("/tasks/:id", taskHandler.UpdateTask)
		authed.PATCH("/tasks/:id/toggle", taskHandler.ToggleCompleted)
		authed.PATCH("/tasks/:id/important", taskHandler.ToggleImportant)
		authed.DELETE("/tasks/:id", taskHandler.DeleteTask)

		authed.GET("/projects", projectHandler.ListProjects)
		authed.POST("/projects", projectHandler.CreateProject)
		authed.GET("/projects/:id", projectHandler.GetProject)
		authed.PATCH("/projects/:id", projectHandler.UpdateProject)
		authed.DELETE("/projects/:id", projectHandler.DeleteProject)
	}
}

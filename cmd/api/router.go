package api

import (
	"net/http"

	"tasknag-backend/internal/browser"
	taskDelivery "tasknag-backend/internal/task/delivery"
	"tasknag-backend/internal/task/scheduler"
	"tasknag-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, sseManager *sse.Manager, taskHandler *taskDelivery.TaskHandler, sched *scheduler.Scheduler, dispatcher *browser.Dispatcher) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint for the desktop shell
		api.GET("/events", func(c *gin.Context) {
			sseManager.ServeHTTP(c)
		})

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.GET("/count", taskHandler.CountIncomplete)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/children", taskHandler.GetChildren)
			tasks.PATCH("/:id/move", taskHandler.MoveTask)
			tasks.PATCH("/:id/progress", taskHandler.UpdateProgress)
		}

		// Notification engine routes
		notifications := api.Group("/notifications")
		{
			notifications.POST("/check", CheckNow(sched))
		}

		// Browser action routes
		actions := api.Group("/browser-actions")
		{
			actions.POST("/validate", ValidateActionURL(dispatcher))
			actions.POST("/test", TestActionURL(dispatcher))
		}
	}
}

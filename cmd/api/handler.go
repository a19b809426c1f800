package api

import (
	"log"

	taskDelivery "tasknag-backend/internal/task/delivery"
	"tasknag-backend/internal/task/scheduler"
	taskUsecasePkg "tasknag-backend/internal/task/usecase"
	"tasknag-backend/internal/browser"
	"tasknag-backend/pkg/config"
	"tasknag-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	taskUsecase taskUsecasePkg.TaskUsecase
	scheduler   *scheduler.Scheduler
	dispatcher  *browser.Dispatcher
	sseManager  *sse.Manager
	config      *config.Config
	taskHandler *taskDelivery.TaskHandler
}

func NewHandler(taskUc taskUsecasePkg.TaskUsecase, sched *scheduler.Scheduler, dispatcher *browser.Dispatcher, sseManager *sse.Manager, cfg *config.Config) *Handler {
	taskHandler := taskDelivery.NewTaskHandler(taskUc)
	log.Println("Task handler initialized")

	return &Handler{
		taskUsecase: taskUc,
		scheduler:   sched,
		dispatcher:  dispatcher,
		sseManager:  sseManager,
		config:      cfg,
		taskHandler: taskHandler,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.sseManager, h.taskHandler, h.scheduler, h.dispatcher)

	return r.Run(addr)
}

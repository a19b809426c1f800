package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	api "tasknag-backend/cmd/api"
	"tasknag-backend/internal/browser"
	"tasknag-backend/internal/notification"
	"tasknag-backend/internal/progress"
	"tasknag-backend/internal/task/domain"
	taskRepo "tasknag-backend/internal/task/repository"
	"tasknag-backend/internal/task/scheduler"
	taskUsecase "tasknag-backend/internal/task/usecase"
	"tasknag-backend/pkg/clock"
	"tasknag-backend/pkg/config"
	"tasknag-backend/pkg/database"
	"tasknag-backend/pkg/desktop"
	"tasknag-backend/pkg/opener"
	"tasknag-backend/pkg/sse"
)

// desktopDelivery fans notification channels out to the OS. Toast and sound
// go straight to the desktop; maximize is relayed to the shell over SSE since
// only the window owner can raise itself.
type desktopDelivery struct {
	notifier *desktop.Notifier
	sse      *sse.Manager
}

func (d *desktopDelivery) Show(title, body string) error { return d.notifier.Show(title, body) }
func (d *desktopDelivery) PlaySound() error              { return d.notifier.PlaySound() }
func (d *desktopDelivery) MaximizeWindow() error {
	d.sse.Broadcast("maximize", nil)
	return nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewSQLiteConnection(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	taskRepository := taskRepo.NewGormTaskRepository(db)

	// Initialize SSE Manager
	sseManager := sse.NewManager()
	go sseManager.Run()

	clk := clock.System()

	// Initialize progress propagation and use cases
	propagator := progress.NewPropagator(taskRepository, clk)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository, propagator, clk)

	// Initialize browser action dispatcher
	dispatcher := browser.NewDispatcher(opener.NewSystemOpener(), cfg.ActionTimeout, cfg.ActionDelay)

	// Initialize notification engine
	delivery := &desktopDelivery{
		notifier: desktop.NewNotifier("TaskNag"),
		sse:      sseManager,
	}
	engine := notification.NewService(taskRepository, delivery, dispatcher, sseManager, cfg.StaleTaskAge)

	// Start the scheduler
	sched := scheduler.New(engine, clk, cfg.TickInterval, cfg.ProactiveInterval)
	sched.Start()
	log.Println("Notification scheduler started")

	// Stop the scheduler cleanly on shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		sched.Stop()
		os.Exit(0)
	}()

	// Initialize HTTP handler
	handler := api.NewHandler(taskUsecaseInstance, sched, dispatcher, sseManager, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

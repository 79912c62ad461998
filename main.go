package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/auth"
	"github.com/example/task-tracker/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then dependent modules.
	app.Register(auth.NewModule()) // identity boundary
	app.Register(task.NewModule()) // task data engine
	app.Register(api.NewModule())  // depends on auth and task

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown; stopping the task module flushes the last
	// fire-and-forget save.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register   - Register a new user")
	log.Println("  POST   /api/v1/auth/login      - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh    - Refresh access token")
	log.Println("  GET    /health                 - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile         - Current user profile")
	log.Println("  PUT    /api/v1/profile         - Update name/email")
	log.Println("  POST   /api/v1/tasks           - Create a task")
	log.Println("  GET    /api/v1/tasks           - List tasks (filter/sort via query)")
	log.Println("  PUT    /api/v1/tasks/:id       - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id       - Delete a task")
	log.Println("  GET    /api/v1/tasks/stats     - Dashboard statistics")
	log.Println("  GET    /api/v1/tasks/facets    - Categories and tags in use")
	log.Println("  POST   /api/v1/tasks/refresh   - Re-read tasks from storage")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

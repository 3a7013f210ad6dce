package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/MorenaPoli/todo-api/modules/analytics"
	"github.com/MorenaPoli/todo-api/modules/api"
	"github.com/MorenaPoli/todo-api/modules/auth"
	"github.com/MorenaPoli/todo-api/modules/cache"
	"github.com/MorenaPoli/todo-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo API ===")

	authCfg, err := auth.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load auth config: %v", err)
	}
	taskCfg, err := task.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load task config: %v", err)
	}
	analyticsCfg, err := analytics.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load analytics config: %v", err)
	}
	cacheCfg, err := cache.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load cache config: %v", err)
	}
	apiCfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load api config: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	taskModule := task.NewModule(taskCfg)
	var cacheModule *cache.CacheModule
	if cacheCfg.Enabled() {
		cacheModule = cache.NewModule(cacheCfg)
		app.Register(cacheModule)
	}
	app.Register(auth.NewModule(authCfg))
	app.Register(taskModule)
	app.Register(analytics.NewModule(analyticsCfg))
	app.Register(api.NewModule(apiCfg))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wire the optional list cache into the task store after start
	if cacheModule != nil {
		taskModule.SetCache(cacheModule.GetCache())
		log.Println("Task list caching enabled")
	}

	printStartupInfo(apiCfg.HTTPPort, cacheCfg.Enabled())

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

func printStartupInfo(port int, cacheEnabled bool) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/signup              - Create an account")
	log.Println("  POST   /auth/login               - Login and get tokens")
	log.Println("  POST   /auth/refresh             - Refresh access token")
	log.Println("  GET    /health                   - Health check")
	log.Println("")
	log.Println("  Task Endpoints (token optional, scopes tasks to the user):")
	log.Println("  GET    /tasks                    - List tasks (filter_by, category, priority)")
	log.Println("  POST   /tasks                    - Create a task")
	log.Println("  PUT    /tasks/{id}               - Replace a task")
	log.Println("  DELETE /tasks/{id}               - Delete a task")
	log.Println("  GET    /search                   - Search tasks (q, in_title, in_category)")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /analytics/productivity   - Productivity report (timeframe)")
	log.Println("")
	if cacheEnabled {
		log.Println("List caching: Redis (invalidated on every write)")
	} else {
		log.Println("List caching: disabled (set REDIS_ADDR to enable)")
	}
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

package main

import (
	"log"
	"net/http"

	_ "gotrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gotrack/internal/auth"
	"gotrack/internal/config"
	"gotrack/internal/handler"
	"gotrack/internal/platform/supabase"
	"gotrack/internal/repository"
	"gotrack/internal/router"
	"gotrack/internal/service"
)

// @title GoTrack Backend API
// @version 1.0
// @description Task and screenshot tracking backend proxying a managed auth, table store, and object storage platform.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	// One platform, two privilege tiers: the anonymous client handles
	// end-user auth flows, the service-role client everything privileged.
	anonClient := supabase.New(cfg.SupabaseURL, cfg.AnonKey)
	adminClient := supabase.New(cfg.SupabaseURL, cfg.ServiceRoleKey)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(adminClient)
	taskRepo := repository.NewTaskRepository(adminClient)
	screenshotRepo := repository.NewScreenshotRepository(adminClient)

	// Initialize services
	userService := service.NewUserService(anonClient, adminClient, profileRepo)
	taskService := service.NewTaskService(taskRepo, profileRepo)
	screenshotService := service.NewScreenshotService(screenshotRepo, adminClient, cfg.StorageBucket, cfg.BucketPublic)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	screenshotHandler := handler.NewScreenshotHandler(screenshotService)

	// Bearer middleware: the verified tier gates all privileged routes.
	verified := auth.Middleware(auth.NewPlatformVerifier(adminClient))
	unverified := auth.Middleware(auth.ClaimsVerifier{})

	router.Register(
		e,
		userHandler,
		taskHandler,
		screenshotHandler,
		verified,
		unverified,
		true,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/cvrelay/pkg/errx/errxhttp"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Configuration & Logger
	cfg := LoadConfig()
	logx.SetOutput(os.Stderr, cfg.LogFormat)
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting CV Relay API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Background workers
	ctx, cancel := context.WithCancel(context.Background())
	container.ResumeWorker.Start(ctx)

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "CV Relay API",
		DisableStartupMessage: true,
		ErrorHandler:          errxhttp.ErrorHandler,
		BodyLimit:             12 * 1024 * 1024,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		queue, _ := container.Queue.Stats(c.Context())
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
			"queue":  queue,
		})
	})

	// 7. Register Routes
	// /api/vacancies/*, /api/candidates/*, /api/resumes/*
	container.ResumeHandlers.RegisterRoutes(app, container.TokenService)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	<-sig // Wait for signal
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	container.ResumeWorker.Wait()

	logx.Info("Server exited")
}

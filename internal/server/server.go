package server

import (
	"context"

	"ai-learning-assistant-be/internal/bootstrap"
	"ai-learning-assistant-be/internal/config"
	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const HealthMessage = "✅ AI Learning Assistant Backend is running"

type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger logger.ILogger
}

func New(cfg *config.Config, container *bootstrap.Container, log logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.App.MaxDocumentBytes) + 1024*1024, // multipart overhead
		ErrorHandler: serverutils.NewErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))
	app.Use(otelfiber.Middleware())

	// Static
	app.Static("/uploads", cfg.App.UploadDir)

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(HealthMessage)
	})

	// Routes
	container.RegisterRoutes(app.Group("/api"))

	return &Server{
		app:    app,
		cfg:    cfg,
		logger: log,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info(constant.ModuleServer, "Server is running", map[string]interface{}{
		"url": "http://localhost:" + s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

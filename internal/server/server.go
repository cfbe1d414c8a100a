// Package server assembles the Fiber application serving the product API.
package server

import (
	"context"
	"log/slog"
	"time"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Products  repositories.ProductRepository
	Store     handlers.Pinger
	Publisher services.ProductEventPublisher
	Metrics   *metrics.Metrics
	Log       *slog.Logger
}

// New builds the Fiber app with middleware and every route registered.
func New(cfg *config.Config, deps Deps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	if deps.Store == nil {
		deps.Store = noopPinger{}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log, deps.Metrics))
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))

	opts := []services.ProductServiceOption{
		services.WithLogger(log),
		services.WithMetrics(deps.Metrics),
	}
	if deps.Publisher != nil {
		opts = append(opts, services.WithPublisher(deps.Publisher))
	}
	productService := services.NewProductService(deps.Products, opts...)
	limits := services.PageLimits{DefaultLimit: cfg.Catalog.DefaultPageSize, MaxLimit: cfg.Catalog.MaxPageSize}

	productHandler := handlers.NewProductHandler(productService, limits, log)
	systemHandler := handlers.NewSystemHandler(cfg.App.Version, deps.Store, log)

	app.Get("/", systemHandler.HandleRoot)
	app.Get("/health", systemHandler.HandleHealth)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	if cfg.HTTP.RateLimitMax > 0 {
		api.Use(rateLimiter(cfg.HTTP.RateLimitMax, cfg.HTTP.RateLimitWindow))
	}

	var writeGuards []fiber.Handler
	if cfg.Auth.JWTSecret != "" {
		tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		writeGuards = append(writeGuards, middleware.AuthRequired(tokens, log))
	}
	productHandler.RegisterRoutes(api, writeGuards...)

	app.Use(systemHandler.HandleNotFound)
	return app
}

func rateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
		},
	})
}

type noopPinger struct{}

func (noopPinger) Ping(context.Context) error { return nil }

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/models"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/logger"
	"catalog/pkg/metrics"
	"catalog/pkg/rabbitmq"

	"golang.org/x/sync/errgroup"
)

const auditConsumer = "catalog-audit"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// --- Configuration ---
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}

	log, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	store, err := database.Open(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("error closing store", "error", err)
		}
	}()

	if cfg.Store.Seed {
		if _, err := database.Seed(ctx, store.Products, log); err != nil {
			return err
		}
	}

	// --- Product events ---
	var (
		publisher services.ProductEventPublisher
		mqClient  *rabbitmq.Client
	)
	if cfg.RabbitMQ.Enabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, log)
		if err != nil {
			// events are best effort; the API keeps serving without them
			log.Warn("product events disabled", "error", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- HTTP ---
	m := metrics.New("catalog")
	app := server.New(cfg, server.Deps{
		Products:  store.Products,
		Store:     store,
		Publisher: publisher,
		Metrics:   m,
		Log:       log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "port", cfg.App.Port, "store", store.Driver, "env", cfg.App.Env)
		if err := app.Listen(cfg.App.Port); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	if mqClient != nil && cfg.RabbitMQ.Audit {
		g.Go(func() error {
			log.Info("starting product event audit consumer", "queue", cfg.RabbitMQ.Queue)
			return mqClient.ConsumeProductEvents(gctx, auditConsumer, auditProductEvent(log))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		return app.ShutdownWithTimeout(cfg.HTTP.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server gracefully stopped")
	return nil
}

// auditProductEvent logs every product change delivered on the event queue.
func auditProductEvent(log *slog.Logger) func(models.ProductEvent) error {
	return func(event models.ProductEvent) error {
		if event.Type == "" || event.ProductID == "" {
			return fmt.Errorf("malformed product event %+v", event)
		}
		log.Info("product event",
			"event", event.Type,
			"product_id", event.ProductID,
			"name", event.Product.Name,
			"active", event.Product.Active,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}

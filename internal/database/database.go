// Package database opens the configured product store.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"catalog/internal/config"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is an open product store.
type Store struct {
	Products repositories.ProductRepository
	Driver   string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the database connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverPostgres:
		return openGORM(postgres.Open(cfg.PostgresDSN), cfg.Driver, log)
	case config.DriverSQLite:
		return openGORM(sqlite.Open(cfg.SQLitePath), cfg.Driver, log)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// NewMemoryStore returns a store kept entirely in process memory.
func NewMemoryStore() *Store {
	return &Store{Products: repositories.NewMemoryProductRepository(), Driver: config.DriverMemory}
}

func openMongo(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	repo := repositories.NewMongoProductRepository(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info("connected to MongoDB", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)

	return &Store{
		Products: repo,
		Driver:   cfg.Driver,
		ping:     func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close:    client.Disconnect,
	}, nil
}

// OpenGORM wraps an already opened gorm connection, migrating the product table.
func OpenGORM(db *gorm.DB, driver string) (*Store, error) {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	return &Store{
		Products: repositories.NewGORMProductRepository(db),
		Driver:   driver,
		ping:     sqlDB.PingContext,
		close:    func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func openGORM(dialector gorm.Dialector, driver string, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store, err := OpenGORM(db, driver)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database", "driver", driver)
	return store, nil
}

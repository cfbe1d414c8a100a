package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) repositories.ProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return repositories.NewGORMProductRepository(db)
}

// forEachRepository runs fn against every repository that works without external services.
func forEachRepository(t *testing.T, fn func(t *testing.T, repo repositories.ProductRepository)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, repositories.NewMemoryProductRepository())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newSQLiteRepository(t))
	})
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo repositories.ProductRepository, products ...models.Product) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := products[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		}
		require.NoError(t, repo.Create(context.Background(), &p))
		out = append(out, p)
	}
	return out
}

func product(name, category string, price float64) models.Product {
	return models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    category,
		Stock:       10,
		Active:      true,
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string      { return &s }

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		p := product("Ball", models.CategorySports, 49.99)
		p.Stock = 50
		require.NoError(t, repo.Create(ctx, &p))

		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ball", got.Name)
		assert.Equal(t, 49.99, got.Price)
		assert.Equal(t, 50, got.Stock)
		assert.True(t, got.Active)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_ListFilters(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		seed(t, repo,
			product("Laptop Pro", models.CategoryElectronics, 1200),
			product("USB cable", models.CategoryElectronics, 9.99),
			product("Running Shirt", models.CategoryClothing, 29.99),
			product("Football", models.CategorySports, 49.99),
			product("Coffee 100% Arabica", models.CategoryHome, 10),
			product("Tennis racket", models.CategorySports, 50),
		)

		all, total, err := repo.List(ctx, models.ProductQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
		assert.Equal(t, "Tennis racket", all[0].Name, "newest first")

		sports, total, err := repo.List(ctx, models.ProductQuery{Category: models.CategorySports, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, p := range sports {
			assert.Equal(t, models.CategorySports, p.Category)
		}

		ranged, _, err := repo.List(ctx, models.ProductQuery{MinPrice: floatPtr(10), MaxPrice: floatPtr(50), Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Running Shirt", "Football", "Coffee 100% Arabica", "Tennis racket"}, names(ranged))
		for _, p := range ranged {
			assert.GreaterOrEqual(t, p.Price, 10.0)
			assert.LessOrEqual(t, p.Price, 50.0)
		}

		byName, _, err := repo.List(ctx, models.ProductQuery{Name: "LAPTOP", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"Laptop Pro"}, names(byName))

		// wildcard characters are matched literally
		literal, _, err := repo.List(ctx, models.ProductQuery{Name: "100%", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"Coffee 100% Arabica"}, names(literal))

		none, total, err := repo.List(ctx, models.ProductQuery{Name: "_", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, none)
		assert.Zero(t, total)
	})
}

func TestProductRepository_ListPagination(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		products := make([]models.Product, 12)
		for i := range products {
			products[i] = product(fmt.Sprintf("Item %02d", i), models.CategoryBooks, float64(i))
		}
		seed(t, repo, products...)

		page, total, err := repo.List(context.Background(), models.ProductQuery{Page: 2, Limit: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 12, total)
		// records 6-10 in newest-first order
		assert.Equal(t, []string{"Item 06", "Item 05", "Item 04", "Item 03", "Item 02"}, names(page))

		last, _, err := repo.List(context.Background(), models.ProductQuery{Page: 3, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{"Item 01", "Item 00"}, names(last))

		beyond, total, err := repo.List(context.Background(), models.ProductQuery{Page: 4, Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, beyond)
		assert.EqualValues(t, 12, total)
	})
}

func TestProductRepository_UpdatePartial(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		created := seed(t, repo, product("Lamp", models.CategoryHome, 35))[0]

		updated, err := repo.Update(ctx, created.ID, models.UpdateProductRequest{Stock: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Stock)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Price, updated.Price)
		assert.Equal(t, created.Category, updated.Category)
		assert.True(t, updated.Active)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		renamed, err := repo.Update(ctx, created.ID, models.UpdateProductRequest{Name: strPtr("Desk lamp"), Price: floatPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, "Desk lamp", renamed.Name)
		assert.Equal(t, 0.0, renamed.Price)
		assert.Equal(t, 0, renamed.Stock)

		_, err = repo.Update(ctx, "missing", models.UpdateProductRequest{Stock: intPtr(1)})
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_SoftDelete(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		created := seed(t, repo,
			product("Novel", models.CategoryBooks, 15),
			product("Atlas", models.CategoryBooks, 40),
		)

		deleted, err := repo.SoftDelete(ctx, created[0].ID)
		require.NoError(t, err)
		assert.False(t, deleted.Active)

		list, total, err := repo.List(ctx, models.ProductQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []string{"Atlas"}, names(list))

		// soft-deleted rows still count as stored
		all, err := repo.CountAll(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, all)

		got, err := repo.GetByID(ctx, created[0].ID)
		require.NoError(t, err)
		assert.False(t, got.Active)

		// reactivation goes through a regular update
		restored, err := repo.Update(ctx, created[0].ID, models.UpdateProductRequest{Active: func() *bool { b := true; return &b }()})
		require.NoError(t, err)
		assert.True(t, restored.Active)

		_, err = repo.SoftDelete(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

package database

import (
	"context"
	"fmt"
	"log/slog"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// SampleProducts is the starter catalog inserted into an empty store.
func SampleProducts() []models.Product {
	return []models.Product{
		{Name: "iPhone 15 Pro", Description: "Apple iPhone 15 Pro 128GB smartphone with pro camera system", Price: 1199.99, Category: models.CategoryElectronics, Stock: 25, Image: "https://example.com/iphone15.jpg", Active: true},
		{Name: "Samsung Galaxy S24", Description: "Samsung Galaxy S24 256GB smartphone with Dynamic AMOLED display", Price: 899.99, Category: models.CategoryElectronics, Stock: 30, Image: "https://example.com/galaxy-s24.jpg", Active: true},
		{Name: "Nike Running Shirt", Description: "Nike Dri-FIT sports shirt for running", Price: 29.99, Category: models.CategoryClothing, Stock: 100, Image: "https://example.com/nike-shirt.jpg", Active: true},
		{Name: "Nespresso Coffee Maker", Description: "Automatic Nespresso coffee maker with capsule system", Price: 199.99, Category: models.CategoryHome, Stock: 15, Image: "https://example.com/nespresso.jpg", Active: true},
		{Name: "Adidas Football", Description: "Official Adidas ball for professional football", Price: 49.99, Category: models.CategorySports, Stock: 50, Image: "https://example.com/soccer-ball.jpg", Active: true},
	}
}

// Seed inserts SampleProducts when the store holds no product at all.
// It returns the number of products inserted.
func Seed(ctx context.Context, repo repositories.ProductRepository, log *slog.Logger) (int, error) {
	total, err := repo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect store before seeding: %w", err)
	}
	if total > 0 {
		log.Info("store already populated, skipping seed", "products", total)
		return 0, nil
	}

	products := SampleProducts()
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("error seeding product %s: %w", products[i].Name, err)
		}
		log.Info("seeded product", "name", products[i].Name, "id", products[i].ID)
	}
	return len(products), nil
}

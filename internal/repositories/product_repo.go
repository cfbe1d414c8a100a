package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned (wrapped) when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns the active products matching q, newest first, and the total match count.
	List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
	// GetByID returns a product whether or not it is active.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Create assigns the ID and timestamps and stores the product.
	Create(ctx context.Context, product *models.Product) error
	// Update applies only the fields set in req.
	Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error)
	// SoftDelete sets active=false.
	SoftDelete(ctx context.Context, id string) (*models.Product, error)
	// CountAll counts every stored product, soft-deleted ones included.
	CountAll(ctx context.Context) (int64, error)
}

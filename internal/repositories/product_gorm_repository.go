package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GORMProductRepository) filtered(ctx context.Context, q models.ProductQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("active = ?", true)
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.Name != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Name)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
	return tx
}

// List retrieves a page of active products from the database.
func (r *GORMProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := make([]models.Product, 0, q.Limit)
	tx := r.filtered(ctx, q).Order("created_at DESC").Offset(q.Skip())
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// CountAll counts every product row, active or not.
func (r *GORMProductRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the provided fields to an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	fields := req.Fields()
	fields["updated_at"] = time.Now().UTC()
	return r.updateColumns(ctx, id, fields, "update")
}

// SoftDelete marks a product inactive.
func (r *GORMProductRepository) SoftDelete(ctx context.Context, id string) (*models.Product, error) {
	return r.updateColumns(ctx, id, map[string]any{
		"active":     false,
		"updated_at": time.Now().UTC(),
	}, "deletion")
}

func (r *GORMProductRepository) updateColumns(ctx context.Context, id string, fields map[string]any, op string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Map updates keep zero values such as stock=0 and active=false.
		res := tx.Model(&models.Product{}).Where("id = ?", id).UpdateColumns(fields)
		if res.Error != nil {
			return fmt.Errorf("failed to apply product %s: %w", op, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s not found for %s: %w", id, op, ErrProductNotFound)
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

package services

import (
	"context"
	"errors"
	"log/slog"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
	"catalog/pkg/metrics"
)

// ProductEventPublisher receives product change events.
type ProductEventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	publisher ProductEventPublisher
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// ProductServiceOption configures optional collaborators of ProductService.
type ProductServiceOption func(*ProductService)

// WithPublisher publishes an event after every successful mutation.
func WithPublisher(p ProductEventPublisher) ProductServiceOption {
	return func(s *ProductService) { s.publisher = p }
}

// WithMetrics counts operations by result.
func WithMetrics(m *metrics.Metrics) ProductServiceOption {
	return func(s *ProductService) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ProductServiceOption {
	return func(s *ProductService) { s.log = l }
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:      repo,
		validator: validation.New(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns one page of active products matching q.
func (s *ProductService) ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	products, total, err := s.repo.List(ctx, q)
	s.observe("list", err)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{Products: products, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// GetProductByID retrieves a single product by its ID, including inactive ones.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	s.observe("get", err)
	return product, err
}

// CreateProduct validates the request and stores a new active product.
// Invalid requests return *validation.Errors and nothing is stored.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if verr := s.validator.ValidateCreate(&req); verr != nil {
		s.observe("create", verr)
		return nil, verr
	}

	product := req.Product()
	if err := s.repo.Create(ctx, product); err != nil {
		s.observe("create", err)
		return nil, err
	}
	s.observe("create", nil)
	s.publish(ctx, models.EventProductCreated, product)
	return product, nil
}

// UpdateProduct validates and applies the fields present in req.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	if verr := s.validator.ValidateUpdate(&req); verr != nil {
		s.observe("update", verr)
		return nil, verr
	}

	var (
		product *models.Product
		err     error
	)
	if req.IsEmpty() {
		product, err = s.repo.GetByID(ctx, id)
	} else {
		product, err = s.repo.Update(ctx, id, req)
	}
	s.observe("update", err)
	if err != nil {
		return nil, err
	}
	if !req.IsEmpty() {
		s.publish(ctx, models.EventProductUpdated, product)
	}
	return product, nil
}

// DeleteProduct soft-deletes a product and returns it with active=false.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.SoftDelete(ctx, id)
	s.observe("delete", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventProductDeleted, product)
	return product, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(ctx, models.NewProductEvent(eventType, *product)); err != nil {
		s.log.WarnContext(ctx, "failed to publish product event",
			"event", eventType, "product_id", product.ID, "error", err)
		return
	}
	s.log.DebugContext(ctx, "published product event", "event", eventType, "product_id", product.ID)
}

func (s *ProductService) observe(operation string, err error) {
	s.metrics.ObserveOperation(operation, result(err))
}

func result(err error) string {
	var verr *validation.Errors
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, repositories.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}

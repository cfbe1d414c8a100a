package services_test

import (
	"context"
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"
	"catalog/pkg/logger"
	"catalog/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of services.ProductEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func newService(repo *MockProductRepository, opts ...services.ProductServiceOption) *services.ProductService {
	opts = append([]services.ProductServiceOption{services.WithLogger(logger.Discard())}, opts...)
	return services.NewProductService(repo, opts...)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e models.ProductEvent) bool { return e.Type == eventType })
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo)
	ctx := context.Background()

	q := models.ProductQuery{Category: models.CategorySports, Page: 2, Limit: 5}
	expected := []models.Product{
		{ID: "1", Name: "Ball", Price: 10.0, Category: models.CategorySports, Active: true},
	}
	mockRepo.On("List", ctx, q).Return(expected, int64(6), nil).Once()

	page, err := service.ListProducts(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, expected, page.Products)
	assert.EqualValues(t, 6, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages())
	mockRepo.AssertExpectations(t)

	mockRepo.On("List", ctx, q).Return(nil, int64(0), fmt.Errorf("database error")).Once()
	_, err = service.ListProducts(ctx, q)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo)
	ctx := context.Background()

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0, Stock: 100, Active: false}

	// inactive products are still returned
	mockRepo.On("GetByID", ctx, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", ctx, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	m := metrics.New("test")
	service := newService(mockRepo, services.WithPublisher(publisher), services.WithMetrics(m))
	ctx := context.Background()

	req := models.CreateProductRequest{
		Name:        strPtr(" Ball "),
		Description: strPtr("desc"),
		Price:       floatPtr(49.99),
		Category:    strPtr("sports"),
		Stock:       intPtr(50),
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Product).ID = "new-id" }).
		Return(nil).Once()
	publisher.On("PublishProductEvent", ctx, eventOfType(models.EventProductCreated)).Return(nil).Once()

	product, err := service.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "new-id", product.ID)
	assert.Equal(t, "Ball", product.Name)
	assert.Equal(t, "desc", product.Description)
	assert.Equal(t, 49.99, product.Price)
	assert.Equal(t, "sports", product.Category)
	assert.Equal(t, 50, product.Stock)
	assert.Equal(t, "", product.Image)
	assert.True(t, product.Active)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProductOperationsTotal.WithLabelValues("create", "ok")))

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(ctx, req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "PublishProductEvent", 1)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo)

	_, err := service.CreateProduct(context.Background(), models.CreateProductRequest{
		Name:        strPtr("Ball"),
		Description: strPtr("desc"),
		Price:       floatPtr(-1),
		Category:    strPtr("sports"),
	})
	verr, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Price cannot be negative", verr.Messages()["price"])
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := newService(mockRepo, services.WithPublisher(publisher))
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
	publisher.On("PublishProductEvent", ctx, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	product, err := service.CreateProduct(ctx, models.CreateProductRequest{
		Name:        strPtr("Mug"),
		Description: strPtr("Ceramic mug"),
		Price:       floatPtr(8),
		Category:    strPtr("home"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := newService(mockRepo, services.WithPublisher(publisher))
	ctx := context.Background()

	req := models.UpdateProductRequest{Stock: intPtr(95)}
	updatedProduct := &models.Product{ID: "1", Name: "Product A", Price: 12.0, Stock: 95, Active: true}

	// Test successful update
	mockRepo.On("Update", ctx, "1", req).Return(updatedProduct, nil).Once()
	publisher.On("PublishProductEvent", ctx, eventOfType(models.EventProductUpdated)).Return(nil).Once()
	product, err := service.UpdateProduct(ctx, "1", req)
	assert.NoError(t, err)
	assert.Equal(t, updatedProduct, product)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	// Test update failure (e.g., product not found in repo)
	mockRepo.On("Update", ctx, "99", req).Return(nil, fmt.Errorf("product with ID 99 not found for update: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.UpdateProduct(ctx, "99", req)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Contains(t, err.Error(), "not found for update")
	mockRepo.AssertExpectations(t)

	// Test invalid field
	_, err = service.UpdateProduct(ctx, "1", models.UpdateProductRequest{Category: strPtr("toys")})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)

	// An empty update reads the current state back
	mockRepo.On("GetByID", ctx, "1").Return(updatedProduct, nil).Once()
	product, err = service.UpdateProduct(ctx, "1", models.UpdateProductRequest{})
	assert.NoError(t, err)
	assert.Equal(t, updatedProduct, product)
	mockRepo.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "PublishProductEvent", 1)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := newService(mockRepo, services.WithPublisher(publisher))
	ctx := context.Background()

	deleted := &models.Product{ID: "1", Name: "Product A", Active: false}

	// Test successful deletion
	mockRepo.On("SoftDelete", ctx, "1").Return(deleted, nil).Once()
	publisher.On("PublishProductEvent", ctx, eventOfType(models.EventProductDeleted)).Return(nil).Once()
	product, err := service.DeleteProduct(ctx, "1")
	assert.NoError(t, err)
	assert.False(t, product.Active)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("SoftDelete", ctx, "99").Return(nil, fmt.Errorf("product with ID 99 not found for deletion: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.DeleteProduct(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

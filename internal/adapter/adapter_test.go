package adapter

import (
	"errors"
	"testing"

	"github.com/dustin/marketplace-backend/internal/category"
	"github.com/dustin/marketplace-backend/internal/enrichment"
	"github.com/dustin/marketplace-backend/internal/product"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock extractor for testing
type mockExtractor struct {
	result *enrichment.Result
	err    error
}

func (m *mockExtractor) Extract(pageURL string) (*enrichment.Result, error) {
	return m.result, m.err
}

func (m *mockExtractor) Name() string {
	return "mock"
}

func (m *mockExtractor) IsHealthy() bool {
	return true
}

func TestExtractorToMetadataExtractor_Extract_Success(t *testing.T) {
	mockResult := &enrichment.Result{
		Title:       "Oak Shelf",
		Description: "Solid oak wall shelf",
		Image:       "https://example.com/shelf.jpg",
		Confidence:  1.0,
	}

	mock := &mockExtractor{result: mockResult}
	adapter := NewExtractorToMetadataExtractor(mock)

	result, err := adapter.Extract("https://example.com/shelf")
	require.NoError(t, err)
	assert.NotNil(t, result)

	assert.Equal(t, "Oak Shelf", result.Title)
	assert.Equal(t, "Solid oak wall shelf", result.Description)
	assert.Equal(t, "https://example.com/shelf.jpg", result.ImageURL)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestExtractorToMetadataExtractor_Extract_Error(t *testing.T) {
	mock := &mockExtractor{err: errors.New("extraction failed")}
	adapter := NewExtractorToMetadataExtractor(mock)

	result, err := adapter.Extract("https://example.com/shelf")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "extraction failed")
}

// Mock product service for testing
type mockProductService struct {
	product *product.Product
	err     error
}

func (m *mockProductService) CreateProduct(sellerID uuid.UUID, role string, req *product.CreateProductRequest) (*product.Product, error) {
	return m.product, m.err
}

func (m *mockProductService) GetProduct(id uuid.UUID) (*product.Product, error) {
	return m.product, m.err
}

func (m *mockProductService) ListProducts(page, limit int) ([]*product.Product, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return []*product.Product{m.product}, 1, nil
}

func (m *mockProductService) DeactivateProduct(role string, id uuid.UUID) error {
	return m.err
}

func (m *mockProductService) EnrichMetadata(productID uuid.UUID) error {
	return m.err
}

func (m *mockProductService) RetryFailedEnrichment() error {
	return m.err
}

func TestProductServiceToReviewProductGateway_FindActive_Success(t *testing.T) {
	productID := uuid.New()
	categoryID := uuid.New()

	mockService := &mockProductService{
		product: &product.Product{
			ID:         productID,
			CategoryID: categoryID,
			Name:       "Oak Shelf",
			Rating:     4.2,
			IsActive:   true,
		},
	}
	adapter := NewProductServiceToReviewProductGateway(mockService)

	result, err := adapter.FindActive(productID)
	require.NoError(t, err)
	assert.NotNil(t, result)

	assert.Equal(t, productID, result.ID)
	assert.Equal(t, categoryID, result.CategoryID)
	assert.Equal(t, "Oak Shelf", result.Name)
	assert.Equal(t, 4.2, result.Rating)
	assert.True(t, result.IsActive)
}

func TestProductServiceToReviewProductGateway_FindActive_Error(t *testing.T) {
	mockService := &mockProductService{err: errors.New("product not found")}
	adapter := NewProductServiceToReviewProductGateway(mockService)

	result, err := adapter.FindActive(uuid.New())
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "product not found")
}

// Mock category service for testing
type mockCategoryService struct {
	category *category.Category
	err      error
}

func (m *mockCategoryService) CreateCategory(role, name, description string) (*category.Category, error) {
	return m.category, m.err
}

func (m *mockCategoryService) GetActiveCategory(id uuid.UUID) (*category.Category, error) {
	return m.category, m.err
}

func (m *mockCategoryService) ListCategories() ([]*category.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []*category.Category{m.category}, nil
}

func (m *mockCategoryService) DeactivateCategory(role string, id uuid.UUID) error {
	return m.err
}

func TestCategoryServiceToReviewCategoryGateway_ActiveExists(t *testing.T) {
	t.Run("Active category resolves true", func(t *testing.T) {
		mockService := &mockCategoryService{
			category: &category.Category{ID: uuid.New(), Name: "Furniture", IsActive: true},
		}
		adapter := NewCategoryServiceToReviewCategoryGateway(mockService)

		exists, err := adapter.ActiveExists(uuid.New())
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Lookup error resolves false without error", func(t *testing.T) {
		mockService := &mockCategoryService{err: errors.New("category not found")}
		adapter := NewCategoryServiceToReviewCategoryGateway(mockService)

		exists, err := adapter.ActiveExists(uuid.New())
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

package product

import (
	"fmt"
	"testing"
	"time"

	"github.com/dustin/marketplace-backend/config"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory product Repository
type fakeRepository struct {
	products map[uuid.UUID]*Product
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: make(map[uuid.UUID]*Product)}
}

func (f *fakeRepository) Create(product *Product) error {
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeRepository) FindByID(id uuid.UUID) (*Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	copied := *product
	return &copied, nil
}

func (f *fakeRepository) FindActiveByID(id uuid.UUID) (*Product, error) {
	product, ok := f.products[id]
	if !ok || !product.IsActive {
		return nil, fmt.Errorf("product not found")
	}
	copied := *product
	return &copied, nil
}

func (f *fakeRepository) FindActive(offset, limit int) ([]*Product, error) {
	var active []*Product
	for _, product := range f.products {
		if product.IsActive {
			copied := *product
			active = append(active, &copied)
		}
	}
	if offset >= len(active) {
		return nil, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], nil
}

func (f *fakeRepository) CountActive() (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) Update(product *Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("product not found")
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeRepository) Deactivate(id uuid.UUID) error {
	product, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product not found")
	}
	product.IsActive = false
	return nil
}

func (f *fakeRepository) FindFailedMetadata(maxRetries int) ([]*Product, error) {
	var failed []*Product
	for _, product := range f.products {
		if product.MetadataStatus == MetadataStatusFailed && product.RetryCount < maxRetries {
			copied := *product
			failed = append(failed, &copied)
		}
	}
	return failed, nil
}

// fakeExtractor returns canned metadata or a fixed error
type fakeExtractor struct {
	metadata *ExtractedMetadata
	err      error
	calls    int
}

func (f *fakeExtractor) Extract(url string) (*ExtractedMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.metadata, nil
}

func newTestService(t *testing.T, extractor MetadataExtractor) (Service, *fakeRepository) {
	t.Helper()

	log, err := logger.NewLogger(&config.LoggingConfig{
		Level:       "error",
		Format:      "console",
		ServiceName: "product-test",
	})
	require.NoError(t, err)

	repo := newFakeRepository()
	return NewService(repo, extractor, log), repo
}

func TestCreateProduct(t *testing.T) {
	t.Run("Seller creates product", func(t *testing.T) {
		svc, repo := newTestService(t, &fakeExtractor{})
		sellerID := uuid.New()

		product, err := svc.CreateProduct(sellerID, "seller", &CreateProductRequest{
			Name:       "oak shelf",
			Price:      49.90,
			Stock:      10,
			CategoryID: uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, sellerID, product.SellerID)
		assert.Equal(t, 0.0, product.Rating)
		assert.True(t, product.IsActive)
		assert.Equal(t, MetadataStatusNone, product.MetadataStatus)

		stored, err := repo.FindActiveByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "oak shelf", stored.Name)
	})

	t.Run("Buyer cannot create product", func(t *testing.T) {
		svc, repo := newTestService(t, &fakeExtractor{})

		_, err := svc.CreateProduct(uuid.New(), "buyer", &CreateProductRequest{
			Name:       "oak shelf",
			Price:      49.90,
			CategoryID: uuid.New(),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Empty(t, repo.products)
	})

	t.Run("Source URL marks metadata pending", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeExtractor{
			metadata: &ExtractedMetadata{Title: "Oak Shelf", Description: "from source"},
		})

		product, err := svc.CreateProduct(uuid.New(), "seller", &CreateProductRequest{
			Name:       "oak shelf",
			Price:      49.90,
			CategoryID: uuid.New(),
			SourceURL:  "https://example.com/oak-shelf",
		})

		require.NoError(t, err)
		assert.Equal(t, MetadataStatusPending, product.MetadataStatus)
	})
}

func TestListProducts(t *testing.T) {
	svc, repo := newTestService(t, &fakeExtractor{})

	for i := 0; i < 5; i++ {
		id := uuid.New()
		repo.products[id] = &Product{
			ID:       id,
			Name:     fmt.Sprintf("item %d", i),
			IsActive: true,
		}
	}
	hiddenID := uuid.New()
	repo.products[hiddenID] = &Product{ID: hiddenID, Name: "hidden", IsActive: false}

	products, total, err := svc.ListProducts(1, 3)
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, int64(5), total)

	// Out of range parameters fall back to defaults
	products, total, err = svc.ListProducts(0, 0)
	require.NoError(t, err)
	assert.Len(t, products, 5)
	assert.Equal(t, int64(5), total)
}

func TestDeactivateProduct(t *testing.T) {
	svc, repo := newTestService(t, &fakeExtractor{})

	id := uuid.New()
	repo.products[id] = &Product{ID: id, Name: "lamp", IsActive: true}

	t.Run("Non-admin denied", func(t *testing.T) {
		err := svc.DeactivateProduct("seller", id)
		require.Error(t, err)
		assert.True(t, repo.products[id].IsActive)
	})

	t.Run("Admin deactivates", func(t *testing.T) {
		err := svc.DeactivateProduct("admin", id)
		require.NoError(t, err)
		assert.False(t, repo.products[id].IsActive)

		_, err = svc.GetProduct(id)
		assert.Error(t, err)
	})
}

func TestEnrichMetadata(t *testing.T) {
	t.Run("Fills missing fields only", func(t *testing.T) {
		extractor := &fakeExtractor{
			metadata: &ExtractedMetadata{
				Description: "extracted description",
				ImageURL:    "https://example.com/extracted.jpg",
				Confidence:  0.9,
			},
		}
		svc, repo := newTestService(t, extractor)

		id := uuid.New()
		repo.products[id] = &Product{
			ID:             id,
			Name:           "lamp",
			Description:    "seller description",
			SourceURL:      "https://example.com/lamp",
			MetadataStatus: MetadataStatusPending,
			IsActive:       true,
		}

		require.NoError(t, svc.EnrichMetadata(id))

		stored := repo.products[id]
		assert.Equal(t, "seller description", stored.Description)
		assert.Equal(t, "https://example.com/extracted.jpg", stored.ImageURL)
		assert.Equal(t, MetadataStatusSuccess, stored.MetadataStatus)
	})

	t.Run("Extraction failure increments retry count", func(t *testing.T) {
		extractor := &fakeExtractor{err: fmt.Errorf("fetch failed")}
		svc, repo := newTestService(t, extractor)

		id := uuid.New()
		repo.products[id] = &Product{
			ID:             id,
			Name:           "lamp",
			SourceURL:      "https://example.com/lamp",
			MetadataStatus: MetadataStatusPending,
			IsActive:       true,
		}

		err := svc.EnrichMetadata(id)
		require.Error(t, err)

		stored := repo.products[id]
		assert.Equal(t, MetadataStatusFailed, stored.MetadataStatus)
		assert.Equal(t, 1, stored.RetryCount)
	})

	t.Run("No source URL is a no-op", func(t *testing.T) {
		extractor := &fakeExtractor{}
		svc, repo := newTestService(t, extractor)

		id := uuid.New()
		repo.products[id] = &Product{ID: id, Name: "lamp", IsActive: true}

		require.NoError(t, svc.EnrichMetadata(id))
		assert.Zero(t, extractor.calls)
	})
}

func TestNeedsEnrichment(t *testing.T) {
	testCases := []struct {
		name     string
		product  Product
		expected bool
	}{
		{"No source URL", Product{MetadataStatus: MetadataStatusPending}, false},
		{"Pending with URL", Product{SourceURL: "https://example.com", MetadataStatus: MetadataStatusPending}, true},
		{"Failed under retry limit", Product{SourceURL: "https://example.com", MetadataStatus: MetadataStatusFailed, RetryCount: 2}, true},
		{"Failed at retry limit", Product{SourceURL: "https://example.com", MetadataStatus: MetadataStatusFailed, RetryCount: 3}, false},
		{"Already succeeded", Product{SourceURL: "https://example.com", MetadataStatus: MetadataStatusSuccess}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.product.NeedsEnrichment())
		})
	}
}

func TestBuildPaginationResponse(t *testing.T) {
	products := []*Product{
		{ID: uuid.New(), Name: "a", CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "b", CreatedAt: time.Now()},
	}

	response := BuildPaginationResponse(products, 7, 2, 2)

	assert.Len(t, response.Products, 2)
	assert.Equal(t, int64(7), response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 2, response.Limit)
	assert.Equal(t, 4, response.Pages)
}

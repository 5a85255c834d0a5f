package adapter

import (
	"github.com/dustin/marketplace-backend/internal/category"
	"github.com/dustin/marketplace-backend/internal/enrichment"
	"github.com/dustin/marketplace-backend/internal/product"
	"github.com/dustin/marketplace-backend/internal/review"
	"github.com/google/uuid"
)

// ExtractorToMetadataExtractor adapts enrichment.Extractor to product.MetadataExtractor
type ExtractorToMetadataExtractor struct {
	extractor enrichment.Extractor
}

// NewExtractorToMetadataExtractor creates a new adapter
func NewExtractorToMetadataExtractor(e enrichment.Extractor) product.MetadataExtractor {
	return &ExtractorToMetadataExtractor{
		extractor: e,
	}
}

func (a *ExtractorToMetadataExtractor) Extract(url string) (*product.ExtractedMetadata, error) {
	result, err := a.extractor.Extract(url)
	if err != nil {
		return nil, err
	}

	// Convert enrichment.Result to product.ExtractedMetadata
	return &product.ExtractedMetadata{
		Title:       result.Title,
		Description: result.Description,
		ImageURL:    result.Image,
		Confidence:  result.Confidence,
	}, nil
}

// ProductServiceToReviewProductGateway adapts product.Service to review.ProductGateway
type ProductServiceToReviewProductGateway struct {
	service product.Service
}

// NewProductServiceToReviewProductGateway creates a new adapter
func NewProductServiceToReviewProductGateway(s product.Service) review.ProductGateway {
	return &ProductServiceToReviewProductGateway{
		service: s,
	}
}

func (a *ProductServiceToReviewProductGateway) FindActive(id uuid.UUID) (*review.Product, error) {
	productEntity, err := a.service.GetProduct(id)
	if err != nil {
		return nil, err
	}

	// Convert product.Product to review.Product
	return &review.Product{
		ID:         productEntity.ID,
		CategoryID: productEntity.CategoryID,
		Name:       productEntity.Name,
		Rating:     productEntity.Rating,
		IsActive:   productEntity.IsActive,
	}, nil
}

// CategoryServiceToReviewCategoryGateway adapts category.Service to review.CategoryGateway
type CategoryServiceToReviewCategoryGateway struct {
	service category.Service
}

// NewCategoryServiceToReviewCategoryGateway creates a new adapter
func NewCategoryServiceToReviewCategoryGateway(s category.Service) review.CategoryGateway {
	return &CategoryServiceToReviewCategoryGateway{
		service: s,
	}
}

func (a *CategoryServiceToReviewCategoryGateway) ActiveExists(id uuid.UUID) (bool, error) {
	_, err := a.service.GetActiveCategory(id)
	if err != nil {
		// Absent and inactive look the same through the active-only lookup
		return false, nil
	}

	return true, nil
}

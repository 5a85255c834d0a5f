package product

import (
	"errors"
	"time"

	"github.com/dustin/marketplace-backend/internal/utils"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo      Repository
	extractor MetadataExtractor
	logger    *logger.Logger
}

// NewService creates a new product service
func NewService(repo Repository, extractor MetadataExtractor, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		extractor: extractor,
		logger:    log.WithComponent("product-service"),
	}
}

func (s *service) CreateProduct(sellerID uuid.UUID, role string, req *CreateProductRequest) (*Product, error) {
	s.logger.Info("Creating product '" + req.Name + "' for seller " + sellerID.String())

	// Listing products is a seller capability; admins may list on behalf
	if role != "seller" && role != "admin" {
		s.logger.Info("Product creation denied for role " + role)
		return nil, errors.New("permission denied")
	}

	metadataStatus := MetadataStatusNone
	if req.SourceURL != "" {
		metadataStatus = MetadataStatusPending
	}

	product := &Product{
		ID:             uuid.New(),
		SellerID:       sellerID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		Stock:          req.Stock,
		Rating:         0.0,
		IsActive:       true,
		SourceURL:      req.SourceURL,
		MetadataStatus: metadataStatus,
		RetryCount:     0,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.Create(product); err != nil {
		s.logger.Error("Failed to create product '" + req.Name + "' for seller " + sellerID.String() + ": " + err.Error())
		return nil, err
	}

	// Asynchronously pull metadata from the source page when one was given
	if product.SourceURL != "" {
		go func() {
			if err := s.EnrichMetadata(product.ID); err != nil {
				s.logger.Error("Failed to enrich metadata for product " + product.ID.String() + " URL " + product.SourceURL + ": " + err.Error())
			}
		}()
	}

	s.logger.Info("Product created successfully: " + product.ID.String() + " '" + req.Name + "' for seller " + sellerID.String())

	return product, nil
}

func (s *service) GetProduct(id uuid.UUID) (*Product, error) {
	return s.repo.FindActiveByID(id)
}

func (s *service) ListProducts(page, limit int) ([]*Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	s.logger.Info("Fetching products (page " + utils.IntToString(page) + ", limit " + utils.IntToString(limit) + ", offset " + utils.IntToString(offset) + ")")

	products, err := s.repo.FindActive(offset, limit)
	if err != nil {
		s.logger.Error("Failed to fetch products: " + err.Error())
		return nil, 0, err
	}

	total, err := s.repo.CountActive()
	if err != nil {
		return products, 0, nil // Return products even if count fails
	}

	return products, total, nil
}

func (s *service) DeactivateProduct(role string, id uuid.UUID) error {
	s.logger.Info("Deactivating product " + id.String() + " requested by role " + role)

	if role != "admin" {
		s.logger.Info("Product deactivation denied for role " + role)
		return errors.New("permission denied")
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("Failed to deactivate product " + id.String() + ": " + err.Error())
		return err
	}

	s.logger.Info("Product deactivated: " + id.String())

	return nil
}

func (s *service) EnrichMetadata(productID uuid.UUID) error {
	s.logger.Info("Enriching metadata for product: " + productID.String())

	product, err := s.repo.FindByID(productID)
	if err != nil {
		return err
	}

	if product.SourceURL == "" {
		return nil
	}

	metadata, err := s.extractor.Extract(product.SourceURL)
	if err != nil {
		s.logger.Error("Metadata extraction failed for product " + productID.String() + " URL " + product.SourceURL + ": " + err.Error())

		product.MetadataStatus = MetadataStatusFailed
		product.RetryCount++
		product.UpdatedAt = time.Now()
		s.repo.Update(product)

		return err
	}

	// Seller-supplied fields win over extracted ones
	if product.Description == "" {
		product.Description = metadata.Description
	}
	if product.ImageURL == "" {
		product.ImageURL = metadata.ImageURL
	}
	product.MetadataStatus = MetadataStatusSuccess
	product.UpdatedAt = time.Now()

	return s.repo.Update(product)
}

func (s *service) RetryFailedEnrichment() error {
	s.logger.Info("Starting failed enrichment retry process")

	failedProducts, err := s.repo.FindFailedMetadata(3) // Max 3 retries
	if err != nil {
		s.logger.Error("Failed to get failed enrichment products: " + err.Error())
		return err
	}

	if len(failedProducts) == 0 {
		s.logger.Info("No failed products to retry")
		return nil
	}

	s.logger.Info("Retrying failed enrichment for " + utils.IntToString(len(failedProducts)) + " products")

	for _, product := range failedProducts {
		if !product.NeedsEnrichment() {
			continue
		}

		s.logger.Info("Retrying enrichment for product " + product.ID.String() + " URL " + product.SourceURL + " (retry " + utils.IntToString(product.RetryCount) + ")")

		err := s.EnrichMetadata(product.ID)
		if err != nil {
			s.logger.Error("Retry failed for product " + product.ID.String() + ": " + err.Error())
		} else {
			s.logger.Info("Retry succeeded for product " + product.ID.String())
		}

		// Small delay between retries to avoid hammering source hosts
		time.Sleep(1 * time.Second)
	}

	return nil
}

// BuildPaginationResponse builds a paginated response
func BuildPaginationResponse(products []*Product, total int64, page, limit int) *ProductListResponse {
	responses := make([]*ProductResponse, len(products))
	for i, product := range products {
		responses[i] = product.ToResponse()
	}

	pagination := utils.CalculatePagination(total, page, limit)

	return &ProductListResponse{
		Products: responses,
		Total:    pagination.Total,
		Page:     pagination.Page,
		Limit:    pagination.Limit,
		Pages:    pagination.Pages,
	}
}

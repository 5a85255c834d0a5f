package repository

import (
	"fmt"

	productPkg "github.com/dustin/marketplace-backend/internal/product"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormProductRepository implements the product.Repository interface
type gormProductRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMProductRepository creates a new GORM-based product repository
func NewGORMProductRepository(db *gorm.DB, log *logger.Logger) productPkg.Repository {
	return &gormProductRepository{
		db:     db,
		logger: log.WithComponent("gorm-product-repository"),
	}
}

func (r *gormProductRepository) Create(product *productPkg.Product) error {
	r.logger.Info("Creating product " + product.ID.String() + " for seller " + product.SellerID.String())

	if err := r.db.Create(product).Error; err != nil {
		r.logger.Error("Failed to create product " + product.ID.String() + " for seller " + product.SellerID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Info("Product created successfully: " + product.ID.String())

	return nil
}

func (r *gormProductRepository) FindByID(id uuid.UUID) (*productPkg.Product, error) {
	var product productPkg.Product

	// Use primary key lookup for optimal performance
	err := r.db.First(&product, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.logger.Info("Product not found: " + id.String())
			return nil, fmt.Errorf("product not found")
		}

		r.logger.Error("Database error finding product " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (r *gormProductRepository) FindActiveByID(id uuid.UUID) (*productPkg.Product, error) {
	var product productPkg.Product

	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.logger.Info("Active product not found: " + id.String())
			return nil, fmt.Errorf("product not found")
		}

		r.logger.Error("Database error finding active product " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (r *gormProductRepository) FindActive(offset, limit int) ([]*productPkg.Product, error) {
	var products []*productPkg.Product

	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error

	if err != nil {
		r.logger.Error("Database error listing active products (offset " + fmt.Sprintf("%d", offset) + ", limit " + fmt.Sprintf("%d", limit) + "): " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	r.logger.Info("Found " + fmt.Sprintf("%d", len(products)) + " active products (offset " + fmt.Sprintf("%d", offset) + ", limit " + fmt.Sprintf("%d", limit) + ")")

	return products, nil
}

func (r *gormProductRepository) CountActive() (int64, error) {
	var count int64

	err := r.db.Model(&productPkg.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error

	if err != nil {
		r.logger.Error("Database error counting active products: " + err.Error())
		return 0, fmt.Errorf("database error: %w", err)
	}

	return count, nil
}

func (r *gormProductRepository) Update(product *productPkg.Product) error {
	r.logger.Info("Updating product " + product.ID.String())

	// Use Save() for updates with GORM optimizations
	if err := r.db.Save(product).Error; err != nil {
		r.logger.Error("Failed to update product " + product.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *gormProductRepository) Deactivate(id uuid.UUID) error {
	r.logger.Info("Deactivating product: " + id.String())

	result := r.db.Model(&productPkg.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if err := result.Error; err != nil {
		r.logger.Error("Failed to deactivate product " + id.String() + ": " + err.Error())
		return fmt.Errorf("failed to deactivate product: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("No active product found to deactivate: " + id.String())
		return fmt.Errorf("product not found")
	}

	r.logger.Info("Product deactivated successfully: " + id.String())

	return nil
}

func (r *gormProductRepository) FindFailedMetadata(maxRetries int) ([]*productPkg.Product, error) {
	var products []*productPkg.Product

	// Process oldest failures first
	err := r.db.Where("metadata_status = ? AND retry_count < ?",
		productPkg.MetadataStatusFailed, maxRetries).
		Order("updated_at ASC").
		Find(&products).Error

	if err != nil {
		r.logger.Error("Database error finding failed metadata products (max retries " + fmt.Sprintf("%d", maxRetries) + "): " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	r.logger.Info("Found " + fmt.Sprintf("%d", len(products)) + " failed metadata products (max retries " + fmt.Sprintf("%d", maxRetries) + ")")

	return products, nil
}

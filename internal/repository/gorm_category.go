package repository

import (
	"fmt"

	categoryPkg "github.com/dustin/marketplace-backend/internal/category"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCategoryRepository implements the category.Repository interface
type gormCategoryRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMCategoryRepository creates a new GORM-based category repository
func NewGORMCategoryRepository(db *gorm.DB, log *logger.Logger) categoryPkg.Repository {
	return &gormCategoryRepository{
		db:     db,
		logger: log.WithComponent("gorm-category-repository"),
	}
}

func (r *gormCategoryRepository) Create(category *categoryPkg.Category) error {
	r.logger.Info("Creating category " + category.ID.String() + " '" + category.Name + "'")

	if err := r.db.Create(category).Error; err != nil {
		r.logger.Error("Failed to create category " + category.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *gormCategoryRepository) FindActiveByID(id uuid.UUID) (*categoryPkg.Category, error) {
	var category categoryPkg.Category

	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.logger.Info("Active category not found: " + id.String())
			return nil, fmt.Errorf("category not found")
		}

		r.logger.Error("Database error finding category " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &category, nil
}

func (r *gormCategoryRepository) ListActive() ([]*categoryPkg.Category, error) {
	var categories []*categoryPkg.Category

	err := r.db.Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error

	if err != nil {
		r.logger.Error("Database error listing categories: " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return categories, nil
}

func (r *gormCategoryRepository) Deactivate(id uuid.UUID) error {
	r.logger.Info("Deactivating category: " + id.String())

	result := r.db.Model(&categoryPkg.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if err := result.Error; err != nil {
		r.logger.Error("Failed to deactivate category " + id.String() + ": " + err.Error())
		return fmt.Errorf("failed to deactivate category: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("No active category found to deactivate: " + id.String())
		return fmt.Errorf("category not found")
	}

	return nil
}

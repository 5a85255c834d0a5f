package repository

import (
	"fmt"

	recPkg "github.com/dustin/marketplace-backend/internal/recommendation"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormRecommendationRepository implements the recommendation.Repository interface
type gormRecommendationRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMRecommendationRepository creates a new GORM-based recommendation repository
func NewGORMRecommendationRepository(db *gorm.DB, log *logger.Logger) recPkg.Repository {
	return &gormRecommendationRepository{
		db:     db,
		logger: log.WithComponent("gorm-recommendation-repository"),
	}
}

func (r *gormRecommendationRepository) FindCandidates(userID uuid.UUID, limit int) ([]*recPkg.Candidate, error) {
	var candidates []*recPkg.Candidate

	// Active products in categories the buyer has reviewed, excluding
	// products the buyer already reviewed. Review counts come from the
	// active rows only, matching what the cached rating reflects.
	err := r.db.Table("products").
		Select(`products.id as product_id, products.name, products.category_id, products.rating,
			(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id AND reviews.status = 'active') as review_count`).
		Where("products.is_active = ?", true).
		Where("products.category_id IN (?)",
			r.db.Table("reviews").
				Select("products.category_id").
				Joins("JOIN products ON products.id = reviews.product_id").
				Where("reviews.user_id = ? AND reviews.status = 'active'", userID)).
		Where("products.id NOT IN (?)",
			r.db.Table("reviews").
				Select("reviews.product_id").
				Where("reviews.user_id = ? AND reviews.status = 'active'", userID)).
		Order("products.rating DESC").
		Limit(limit).
		Scan(&candidates).Error

	if err != nil {
		r.logger.Error("Database error finding candidates for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	r.logger.Info("Found " + fmt.Sprintf("%d", len(candidates)) + " candidates for user " + userID.String())

	return candidates, nil
}

func (r *gormRecommendationRepository) FindTopRated(limit int) ([]*recPkg.Candidate, error) {
	var candidates []*recPkg.Candidate

	err := r.db.Table("products").
		Select(`products.id as product_id, products.name, products.category_id, products.rating,
			(SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id AND reviews.status = 'active') as review_count`).
		Where("products.is_active = ?", true).
		Order("products.rating DESC").
		Limit(limit).
		Scan(&candidates).Error

	if err != nil {
		r.logger.Error("Database error finding top rated products: " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return candidates, nil
}

package repository

import (
	"errors"
	"fmt"

	reviewPkg "github.com/dustin/marketplace-backend/internal/review"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormReviewRepository implements the review.Repository interface
type gormReviewRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMReviewRepository creates a new GORM-based review repository
func NewGORMReviewRepository(db *gorm.DB, log *logger.Logger) reviewPkg.Repository {
	return &gormReviewRepository{
		db:     db,
		logger: log.WithComponent("gorm-review-repository"),
	}
}

func (r *gormReviewRepository) Create(review *reviewPkg.Review) error {
	r.logger.Info("Creating review " + review.ID.String() + " for product " + review.ProductID.String() + " by user " + review.UserID.String())

	if err := r.db.Create(review).Error; err != nil {
		// The partial unique index on active (user_id, product_id) pairs
		// turns a lost race between concurrent creates into a conflict
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Info("Duplicate active review for product " + review.ProductID.String() + " by user " + review.UserID.String())
			return reviewPkg.ErrDuplicateReview
		}

		r.logger.Error("Failed to create review " + review.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *gormReviewRepository) FindActiveByID(id uuid.UUID) (*reviewPkg.Review, error) {
	var review reviewPkg.Review

	err := r.db.Where("id = ? AND status = ?", id, reviewPkg.StatusActive).First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.logger.Info("Active review not found: " + id.String())
			return nil, fmt.Errorf("review not found")
		}

		r.logger.Error("Database error finding review " + id.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &review, nil
}

func (r *gormReviewRepository) FindActiveByUserAndProduct(userID, productID uuid.UUID) (*reviewPkg.Review, error) {
	var review reviewPkg.Review

	err := r.db.Where("user_id = ? AND product_id = ? AND status = ?",
		userID, productID, reviewPkg.StatusActive).First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review not found")
		}

		r.logger.Error("Database error finding review by user " + userID.String() + " and product " + productID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &review, nil
}

func (r *gormReviewRepository) ListActive() ([]*reviewPkg.Review, error) {
	var reviews []*reviewPkg.Review

	// Insertion order
	err := r.db.Where("status = ?", reviewPkg.StatusActive).
		Order("created_at ASC").
		Find(&reviews).Error

	if err != nil {
		r.logger.Error("Database error listing active reviews: " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return reviews, nil
}

func (r *gormReviewRepository) Deactivate(review *reviewPkg.Review) error {
	r.logger.Info("Deactivating review: " + review.ID.String())

	result := r.db.Model(&reviewPkg.Review{}).
		Where("id = ? AND status = ?", review.ID, reviewPkg.StatusActive).
		Updates(map[string]interface{}{
			"status":     reviewPkg.StatusDeactivated,
			"updated_at": review.UpdatedAt,
		})
	if err := result.Error; err != nil {
		r.logger.Error("Failed to deactivate review " + review.ID.String() + ": " + err.Error())
		return fmt.Errorf("failed to deactivate review: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("No active review found to deactivate: " + review.ID.String())
		return fmt.Errorf("review not found")
	}

	return nil
}

func (r *gormReviewRepository) AverageActiveGrade(productID uuid.UUID) (float64, error) {
	type Result struct {
		Average float64
	}

	var result Result

	// COALESCE keeps the zero-active-reviews case at 0.0 instead of NULL
	err := r.db.Model(&reviewPkg.Review{}).
		Select("COALESCE(AVG(grade), 0) as average").
		Where("product_id = ? AND status = ?", productID, reviewPkg.StatusActive).
		Scan(&result).Error

	if err != nil {
		r.logger.Error("Database error averaging grades for product " + productID.String() + ": " + err.Error())
		return 0, fmt.Errorf("database error: %w", err)
	}

	return result.Average, nil
}

func (r *gormReviewRepository) UpdateProductRating(productID uuid.UUID, rating float64) error {
	result := r.db.Model(&reviewPkg.Product{}).
		Where("id = ?", productID).
		Update("rating", rating)
	if err := result.Error; err != nil {
		r.logger.Error("Failed to update rating for product " + productID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	if result.RowsAffected == 0 {
		r.logger.Error("Product row missing during rating recompute: " + productID.String())
		return reviewPkg.ErrProductMissing
	}

	return nil
}

func (r *gormReviewRepository) InTransaction(fn func(reviewPkg.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormReviewRepository{db: tx, logger: r.logger})
	})
}

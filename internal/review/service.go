package review

import (
	"fmt"
	"time"

	"github.com/dustin/marketplace-backend/internal/utils"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo       Repository
	products   ProductGateway
	categories CategoryGateway
	aggregator *Aggregator
	logger     *logger.Logger
}

// NewService creates a new review service
func NewService(repo Repository, products ProductGateway, categories CategoryGateway, aggregator *Aggregator, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		products:   products,
		categories: categories,
		aggregator: aggregator,
		logger:     log.WithComponent("review-service"),
	}
}

func (s *service) ListActiveReviews() ([]*Review, error) {
	return s.repo.ListActive()
}

func (s *service) CreateReview(identity Identity, req *CreateReviewRequest) (*Review, error) {
	s.logger.Info("Creating review for product " + req.ProductID.String() + " by user " + identity.ID.String() + " with grade " + utils.IntToString(req.Grade))

	if !Allowed(identity.Role, OperationCreate) {
		s.logger.Info("Review creation denied for role '" + identity.Role + "' (user " + identity.ID.String() + ")")
		return nil, ErrPermissionDenied
	}

	if req.Grade < 1 || req.Grade > 5 {
		s.logger.Error("Invalid grade " + utils.IntToString(req.Grade) + " for product " + req.ProductID.String() + " by user " + identity.ID.String())
		return nil, fmt.Errorf("grade must be between 1 and 5, got %d", req.Grade)
	}

	// Reviews only attach to active products in active categories
	product, err := s.products.FindActive(req.ProductID)
	if err != nil {
		s.logger.Info("Review rejected - product not found or inactive: " + req.ProductID.String())
		return nil, ErrProductInactive
	}

	categoryActive, err := s.categories.ActiveExists(product.CategoryID)
	if err != nil {
		return nil, err
	}
	if !categoryActive {
		s.logger.Info("Review rejected - category not found or inactive: " + product.CategoryID.String())
		return nil, ErrCategoryInactive
	}

	review := &Review{
		ID:        uuid.New(),
		UserID:    identity.ID,
		ProductID: req.ProductID,
		Comment:   req.Comment,
		Grade:     req.Grade,
		Status:    StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// The duplicate check, insert and rating recompute commit together.
	// A partial unique index on (user_id, product_id) for active rows
	// backstops the check against concurrent creates for the same pair.
	err = s.repo.InTransaction(func(tx Repository) error {
		existing, _ := tx.FindActiveByUserAndProduct(identity.ID, req.ProductID)
		if existing != nil {
			return ErrDuplicateReview
		}

		if err := tx.Create(review); err != nil {
			return err
		}

		return s.aggregator.Recompute(tx, req.ProductID)
	})
	if err != nil {
		if err == ErrDuplicateReview {
			s.logger.Info("Review rejected - duplicate active review for product " + req.ProductID.String() + " by user " + identity.ID.String())
		} else {
			s.logger.Error("Failed to create review for product " + req.ProductID.String() + " by user " + identity.ID.String() + ": " + err.Error())
		}
		return nil, err
	}

	s.logger.Info("Review created successfully: " + review.ID.String() + " for product " + req.ProductID.String() + " by user " + identity.ID.String())

	return review, nil
}

func (s *service) DeactivateReview(identity Identity, reviewID uuid.UUID) (*Review, error) {
	s.logger.Info("Deactivating review " + reviewID.String() + " requested by user " + identity.ID.String())

	if !Allowed(identity.Role, OperationDeactivate) {
		s.logger.Info("Review deactivation denied for role '" + identity.Role + "' (user " + identity.ID.String() + ")")
		return nil, ErrPermissionDenied
	}

	var review *Review

	// Lookup, flip and recompute commit together; a review already
	// deactivated (or never created) surfaces as not found
	err := s.repo.InTransaction(func(tx Repository) error {
		found, err := tx.FindActiveByID(reviewID)
		if err != nil {
			return ErrReviewNotFound
		}

		found.Status = StatusDeactivated
		found.UpdatedAt = time.Now()
		if err := tx.Deactivate(found); err != nil {
			return err
		}

		review = found
		return s.aggregator.Recompute(tx, found.ProductID)
	})
	if err != nil {
		if err == ErrReviewNotFound {
			s.logger.Info("Review not found or already inactive: " + reviewID.String())
		} else {
			s.logger.Error("Failed to deactivate review " + reviewID.String() + ": " + err.Error())
		}
		return nil, err
	}

	s.logger.Info("Review deactivated successfully: " + reviewID.String() + " (product " + review.ProductID.String() + ")")

	return review, nil
}

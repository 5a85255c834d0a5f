package review

import (
	"fmt"

	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
)

// Aggregator keeps products.rating equal to the mean grade of the
// product's active reviews. It is the only writer of that column and is
// always invoked synchronously, inside the same transaction as the review
// mutation that made the rating stale.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new rating aggregator
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{
		logger: log.WithComponent("rating-aggregator"),
	}
}

// Recompute recalculates and persists the rating for one product using the
// given repository (typically transaction-bound). No active reviews means
// rating 0.0, deliberately indistinguishable from the worst average. The
// caller is responsible for having validated that the product exists.
func (a *Aggregator) Recompute(repo Repository, productID uuid.UUID) error {
	avg, err := repo.AverageActiveGrade(productID)
	if err != nil {
		a.logger.Error("Failed to compute average grade for product " + productID.String() + ": " + err.Error())
		return err
	}

	if err := repo.UpdateProductRating(productID, avg); err != nil {
		a.logger.Error("Failed to persist rating for product " + productID.String() + ": " + err.Error())
		return err
	}

	a.logger.Info("Rating recomputed for product " + productID.String() + ": " + fmt.Sprintf("%.2f", avg))

	return nil
}

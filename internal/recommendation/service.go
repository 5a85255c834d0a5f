package recommendation

import (
	"github.com/dustin/marketplace-backend/internal/utils"
	"github.com/dustin/marketplace-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	engine *Engine
	logger *logger.Logger
}

// NewService creates a new recommendation service
func NewService(repo Repository, engine *Engine, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		engine: engine,
		logger: log.WithComponent("recommendation-service"),
	}
}

func (s *service) GetRecommendations(userID uuid.UUID, limit int) ([]*Recommendation, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	s.logger.Info("Fetching recommendations for user " + userID.String() + " (limit " + utils.IntToString(limit) + ")")

	// Overfetch so ranking has something to reorder
	candidates, err := s.repo.FindCandidates(userID, limit*3)
	if err != nil {
		s.logger.Error("Failed to fetch candidates for user " + userID.String() + ": " + err.Error())
		return nil, err
	}

	// Buyers without review history get the overall top-rated products
	if len(candidates) == 0 {
		s.logger.Info("No category history for user " + userID.String() + ", falling back to top rated")
		candidates, err = s.repo.FindTopRated(limit * 3)
		if err != nil {
			return nil, err
		}
	}

	recommendations := s.engine.Rank(candidates, limit)

	s.logger.Info("Returning " + utils.IntToString(len(recommendations)) + " recommendations for user " + userID.String())

	return recommendations, nil
}

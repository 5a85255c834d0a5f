package recommendation

import (
	"github.com/google/uuid"
)

// Candidate is a product eligible for recommendation together with its
// cached rating and active review volume
type Candidate struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
}

// Recommendation is a scored product suggestion
type Recommendation struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Score       float64   `json:"score"`
}

// Repository defines the interface for recommendation data access
type Repository interface {
	// Active products in categories the buyer has reviewed, minus the
	// products the buyer already reviewed
	FindCandidates(userID uuid.UUID, limit int) ([]*Candidate, error)

	// Fallback when the buyer has no review history yet
	FindTopRated(limit int) ([]*Candidate, error)
}

// Service defines the interface for recommendation business logic
type Service interface {
	GetRecommendations(userID uuid.UUID, limit int) ([]*Recommendation, error)
}

// RecommendationsResponse represents recommendations in API responses
type RecommendationsResponse struct {
	Recommendations []*Recommendation `json:"recommendations"`
	Count           int               `json:"count"`
}

package recommendation

import (
	"sort"
)

// Bayesian damping constants. A product with few reviews is pulled toward
// the neutral grade so a single 5-grade review does not outrank an
// established 4.5 product.
const (
	priorGrade    = 3.0
	priorWeight   = 5.0
	minimumRating = 0.0
)

// Engine ranks candidate products by damped average grade
type Engine struct{}

// NewEngine creates a new ranking engine
func NewEngine() *Engine {
	return &Engine{}
}

// Score computes the damped rating for one candidate
func (e *Engine) Score(c *Candidate) float64 {
	count := float64(c.ReviewCount)
	if c.Rating < minimumRating {
		return minimumRating
	}
	return (count*c.Rating + priorWeight*priorGrade) / (count + priorWeight)
}

// Rank scores and orders candidates best-first, truncated to limit
func (e *Engine) Rank(candidates []*Candidate, limit int) []*Recommendation {
	recommendations := make([]*Recommendation, 0, len(candidates))

	for _, candidate := range candidates {
		recommendations = append(recommendations, &Recommendation{
			ProductID:   candidate.ProductID,
			Name:        candidate.Name,
			Rating:      candidate.Rating,
			ReviewCount: candidate.ReviewCount,
			Score:       e.Score(candidate),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if limit > 0 && len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	return recommendations
}

package recommendation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	engine := NewEngine()

	t.Run("No reviews pulls to neutral grade", func(t *testing.T) {
		score := engine.Score(&Candidate{Rating: 0.0, ReviewCount: 0})
		assert.InDelta(t, 3.0, score, 0.0001)
	})

	t.Run("Many reviews approach the raw rating", func(t *testing.T) {
		score := engine.Score(&Candidate{Rating: 4.5, ReviewCount: 1000})
		assert.InDelta(t, 4.5, score, 0.01)
	})

	t.Run("Single perfect review stays damped", func(t *testing.T) {
		// (1*5 + 5*3) / (1+5) = 3.33
		score := engine.Score(&Candidate{Rating: 5.0, ReviewCount: 1})
		assert.InDelta(t, 3.3333, score, 0.0001)
	})
}

func TestRank(t *testing.T) {
	engine := NewEngine()

	established := &Candidate{ProductID: uuid.New(), Name: "established", Rating: 4.5, ReviewCount: 200}
	newcomer := &Candidate{ProductID: uuid.New(), Name: "newcomer", Rating: 5.0, ReviewCount: 1}
	mediocre := &Candidate{ProductID: uuid.New(), Name: "mediocre", Rating: 2.0, ReviewCount: 50}

	t.Run("Established product outranks single perfect review", func(t *testing.T) {
		ranked := engine.Rank([]*Candidate{newcomer, established, mediocre}, 10)

		assert.Len(t, ranked, 3)
		assert.Equal(t, "established", ranked[0].Name)
		assert.Equal(t, "newcomer", ranked[1].Name)
		assert.Equal(t, "mediocre", ranked[2].Name)
	})

	t.Run("Limit truncates the list", func(t *testing.T) {
		ranked := engine.Rank([]*Candidate{newcomer, established, mediocre}, 2)
		assert.Len(t, ranked, 2)
		assert.Equal(t, "established", ranked[0].Name)
	})

	t.Run("Empty input yields empty output", func(t *testing.T) {
		ranked := engine.Rank(nil, 5)
		assert.Empty(t, ranked)
	})
}

package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReview(t *testing.T) {
	t.Run("Create new review", func(t *testing.T) {
		userID := uuid.New()
		productID := uuid.New()
		review := Review{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			Comment:   "solid product",
			Grade:     5,
			Status:    StatusActive,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		assert.Equal(t, userID, review.UserID)
		assert.Equal(t, productID, review.ProductID)
		assert.Equal(t, 5, review.Grade)
		assert.True(t, review.IsValidGrade())
		assert.True(t, review.IsActive())
		assert.NotZero(t, review.CreatedAt)
	})

	t.Run("IsValidGrade", func(t *testing.T) {
		testCases := []struct {
			name     string
			grade    int
			expected bool
		}{
			{"Valid grade 1", 1, true},
			{"Valid grade 3", 3, true},
			{"Valid grade 5", 5, true},
			{"Invalid grade 0", 0, false},
			{"Invalid grade 6", 6, false},
			{"Invalid negative grade", -1, false},
			{"Invalid high grade", 100, false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				review := Review{
					UserID:    uuid.New(),
					ProductID: uuid.New(),
					Grade:     tc.grade,
				}
				assert.Equal(t, tc.expected, review.IsValidGrade())
			})
		}
	})

	t.Run("Deactivation is terminal", func(t *testing.T) {
		review := Review{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			ProductID: uuid.New(),
			Grade:     3,
			Status:    StatusActive,
		}

		assert.True(t, review.IsActive())

		review.Status = StatusDeactivated

		assert.False(t, review.IsActive())
		assert.Equal(t, StatusDeactivated, review.Status)
	})

	t.Run("ToResponse", func(t *testing.T) {
		now := time.Now()
		review := Review{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			ProductID: uuid.New(),
			Comment:   "fine",
			Grade:     4,
			Status:    StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}

		response := review.ToResponse()

		assert.Equal(t, review.ID, response.ID)
		assert.Equal(t, review.UserID, response.UserID)
		assert.Equal(t, review.ProductID, response.ProductID)
		assert.Equal(t, review.Comment, response.Comment)
		assert.Equal(t, review.Grade, response.Grade)
		assert.Equal(t, review.Status, response.Status)
		assert.Equal(t, review.CreatedAt, response.CreatedAt)
	})

	t.Run("Table name", func(t *testing.T) {
		review := Review{}
		assert.Equal(t, "reviews", review.TableName())
	})
}

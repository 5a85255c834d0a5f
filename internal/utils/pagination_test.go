package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	testCases := []struct {
		name          string
		total         int64
		page          int
		limit         int
		expectedPages int
	}{
		{"Exact division", 20, 1, 10, 2},
		{"Remainder adds a page", 21, 1, 10, 3},
		{"Fewer items than limit", 3, 1, 10, 1},
		{"No items", 0, 1, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta := CalculatePagination(tc.total, tc.page, tc.limit)

			assert.Equal(t, tc.total, meta.Total)
			assert.Equal(t, tc.page, meta.Page)
			assert.Equal(t, tc.limit, meta.Limit)
			assert.Equal(t, tc.expectedPages, meta.Pages)
		})
	}
}

func TestIntToString(t *testing.T) {
	assert.Equal(t, "0", IntToString(0))
	assert.Equal(t, "42", IntToString(42))
	assert.Equal(t, "-7", IntToString(-7))
}

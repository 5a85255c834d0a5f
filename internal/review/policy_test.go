package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	testCases := []struct {
		name     string
		role     string
		op       Operation
		expected bool
	}{
		{"Buyer can create", "buyer", OperationCreate, true},
		{"Admin cannot create", "admin", OperationCreate, false},
		{"Seller cannot create", "seller", OperationCreate, false},
		{"Empty role cannot create", "", OperationCreate, false},
		{"Unknown role cannot create", "moderator", OperationCreate, false},
		{"Admin can deactivate", "admin", OperationDeactivate, true},
		{"Buyer cannot deactivate", "buyer", OperationDeactivate, false},
		{"Seller cannot deactivate", "seller", OperationDeactivate, false},
		{"Empty role cannot deactivate", "", OperationDeactivate, false},
		{"Unknown role cannot deactivate", "root", OperationDeactivate, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Allowed(tc.role, tc.op))
		})
	}
}

func TestAllowed_UnknownOperation(t *testing.T) {
	// An operation the policy does not know is denied for every role
	unknown := Operation(99)

	assert.False(t, Allowed("buyer", unknown))
	assert.False(t, Allowed("admin", unknown))
	assert.False(t, Allowed("", unknown))
}

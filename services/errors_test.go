package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesNameTheOffender(t *testing.T) {
	assert.Contains(t, (&ValidationError{Field: "due_date", Message: "must be in the future"}).Error(), "due_date")
	assert.Contains(t, (&NotFoundError{Resource: "service", ID: 42}).Error(), "service 42")
	assert.Contains(t, (&InvalidStatusError{Status: "SHIPPED"}).Error(), "SHIPPED")
	assert.Contains(t, (&ConflictError{Field: "order_id", Value: "CMD-20260828-0001"}).Error(), "order_id")
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StorageError{Op: "create order", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create order")
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite message", fmt.Errorf("UNIQUE constraint failed: orders.order_id"), true},
		{"postgres message", fmt.Errorf(`duplicate key value violates unique constraint "idx_orders_order_id"`), true},
		{"unrelated error", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

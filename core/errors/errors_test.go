package errors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "catalog-reconciler/core/errors"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"Validation", apperrors.NewValidationError("upc", "12", "must be 12 digits"), apperrors.ErrValidation},
		{"Consistency", &apperrors.ConsistencyError{Issues: []string{"dup"}}, apperrors.ErrConsistency},
		{"LookupMiss", &apperrors.LookupMiss{Kind: "product", Key: "012345678905"}, apperrors.ErrLookupMiss},
		{"InvalidSlug", apperrors.NewInvalidSlug("  "), apperrors.ErrInvalidSlug},
		{"InvalidSlugIsLookupMiss", apperrors.NewInvalidSlug(""), apperrors.ErrLookupMiss},
		{"BackingStore", apperrors.NewBackingStoreError("insert mappings", fmt.Errorf("conn reset")), apperrors.ErrBackingStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestLookupMissIsNotInvalidSlug(t *testing.T) {
	err := &apperrors.LookupMiss{Kind: "vendor", Key: "acme"}
	assert.False(t, errors.Is(err, apperrors.ErrInvalidSlug))
	assert.Equal(t, `vendor "acme" not found`, err.Error())
}

func TestBackingStoreErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("deadlock")
	err := apperrors.NewBackingStoreError("update mappings", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "update mappings: deadlock", err.Error())
	assert.Nil(t, apperrors.NewBackingStoreError("noop", nil))
}

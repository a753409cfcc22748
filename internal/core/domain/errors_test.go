package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidArgument", ErrInvalidArgument},
		{"ErrDocument", ErrDocument},
		{"ErrValidation", ErrValidation},
		{"ErrNullAttribute", ErrNullAttribute},
		{"ErrDateFormat", ErrDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrInvalidArgument,
		ErrDocument,
		ErrValidation,
		ErrNullAttribute,
		ErrDateFormat,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_WithWrapping tests error wrapping behavior
func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("reporter must be set: %w", ErrValidation)

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.False(t, errors.Is(wrapped, ErrNullAttribute))
	assert.Contains(t, wrapped.Error(), "reporter must be set")
}

func TestItemError(t *testing.T) {
	t.Run("message includes position and key", func(t *testing.T) {
		err := &ItemError{Position: 3, Key: "PROJ-7", Err: ErrValidation}

		assert.Equal(t, "item 3 (PROJ-7): validation failed", err.Error())
	})

	t.Run("message without key", func(t *testing.T) {
		err := &ItemError{Position: 1, Err: ErrDateFormat}

		assert.Equal(t, "item 1: unparsable date", err.Error())
	})

	t.Run("unwraps to the domain error", func(t *testing.T) {
		var err error = &ItemError{Position: 2, Err: fmt.Errorf("comment author: %w", ErrNullAttribute)}

		assert.ErrorIs(t, err, ErrNullAttribute)

		var itemErr *ItemError
		assert.True(t, errors.As(err, &itemErr))
		assert.Equal(t, 2, itemErr.Position)
	})
}

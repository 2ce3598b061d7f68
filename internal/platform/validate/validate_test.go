// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/platform/apperr"
	"github.com/haminhtu/librarium/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "The Go Programming Language", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Digits checks the fixed-length digit rule used for ISBN-13.
*/
func TestValidator_Digits(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_isbn13", "9780134190440", true},
		{"twelve_digits", "978013419044", false},
		{"fourteen_digits", "97801341904400", false},
		{"contains_letter", "97801341904X0", false},
		{"contains_hyphen", "978-013419044", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Digits("isbn", tt.value, 13)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Range verifies inclusive bounds checking.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"lower_bound", 1, true},
		{"upper_bound", 7, true},
		{"below", 0, false},
		{"above", 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("books", tt.value, 1, 7)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf verifies set membership validation.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("featured_type", "popular", "popular", "latest", "custom")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("featured_type", "trending", "popular", "latest", "custom")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_ChainCollectsAllErrors ensures that a chain reports every failed
rule, not just the first.
*/
func TestValidator_ChainCollectsAllErrors(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		Digits("isbn", "abc", 13).
		Range("order", 0, 1, 100)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

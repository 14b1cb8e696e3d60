// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
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
		{"valid_string", "name", "Fruits", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
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
TestValidator_ID checks that identifiers are single, safe path segments.
*/
func TestValidator_ID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		isValid bool
	}{
		{"numeric", "42", true},
		{"uuid", "0190b6a2-7c1e-7b8e-9d2a-3f4e5a6b7c8d", true},
		{"object_id", "65f1c2ab9e", true},
		{"empty", "", false},
		{"slash", "1/../admin", false},
		{"query", "1?x=2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ID("id", tt.id)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Role accepts the enumeration only.
*/
func TestValidator_Role(t *testing.T) {
	for _, role := range []string{"admin", "student", "teacher", "staff", "parent"} {
		v := &validate.Validator{}
		assert.False(t, v.Role("role", role).HasErrors(), role)
	}

	v := &validate.Validator{}
	assert.True(t, v.Role("role", "janitor").HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "Fruits").
		MaxLen("name", "Fruits", 10).
		Slug("slug", "fruits").
		OptionalID("roadmapId", "").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").       // Fails
		Slug("slug", "Not A Slug"). // Fails
		Range("score", 12, 0, 10).  // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

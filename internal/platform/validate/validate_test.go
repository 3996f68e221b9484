// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/validate"
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
		{"valid_string", "name", "Shopfront", false},
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
TestValidator_Mobile checks the mobile number format rule.
*/
func TestValidator_Mobile(t *testing.T) {
	tests := []struct {
		name    string
		mobile  string
		isValid bool
	}{
		{"local_ten_digits", "9876543210", true},
		{"international", "+919876543210", true},
		{"too_short", "12345", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Mobile("mobile", tt.mobile)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Digits checks fixed-length numeric codes such as OTPs.
*/
func TestValidator_Digits(t *testing.T) {
	assert.False(t, (&validate.Validator{}).Digits("code", "123456", 6).HasErrors())
	assert.True(t, (&validate.Validator{}).Digits("code", "12345", 6).HasErrors())
	assert.True(t, (&validate.Validator{}).Digits("code", "12a456", 6).HasErrors())
}

/*
TestValidator_Accepted rejects an unticked terms checkbox.
*/
func TestValidator_Accepted(t *testing.T) {
	assert.False(t, (&validate.Validator{}).Accepted("terms_accepted", true).HasErrors())
	assert.True(t, (&validate.Validator{}).Accepted("terms_accepted", false).HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "Tai").
		MaxLen("name", "Tai", 10).
		Mobile("mobile", "9876543210").
		OneOf("role", "SELLER", "CUSTOMER", "SELLER").
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
		Required("mobile", "").          // Fails
		MinLen("password", "abc", 8).    // Fails
		OneOf("role", "ADMIN", "SELLER"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
)

/*
TestAppError_Status maps each constructor to its HTTP status and code.
*/
func TestAppError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Profile"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", apperr.Conflict("Stale"), http.StatusConflict, "CONFLICT"},
		{"validation", apperr.ValidationError("Bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate_limited", apperr.RateLimited(3), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", apperr.ServiceUnavailable("Down", nil), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Profile not found", apperr.NotFound("Profile").Error())
}

/*
TestAppError_Chain verifies that wrapped AppErrors are found and causes are reachable.
*/
func TestAppError_Chain(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	appErr := apperr.ServiceUnavailable("Unable to reach the authentication service", cause)
	wrapped := fmt.Errorf("login: %w", appErr)

	require.NotNil(t, apperr.As(wrapped))
	assert.Equal(t, http.StatusServiceUnavailable, apperr.As(wrapped).HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, apperr.As(cause))
}

/*
TestAppError_Wrap keeps the original value untouched.
*/
func TestAppError_Wrap(t *testing.T) {
	base := apperr.Unauthorized("Invalid credentials")
	cause := errors.New("backend said 401")

	wrapped := base.Wrap(cause)

	assert.Nil(t, base.Cause)
	assert.Equal(t, cause, wrapped.Cause)
	assert.Equal(t, base.Message, wrapped.Message)
}

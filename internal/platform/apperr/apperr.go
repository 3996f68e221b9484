// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error type shared by the session layer and the auth API.

A backend rejection, a storage failure and a form validation problem all end
up as an [AppError]: the message is what the login or registration form shows,
the status is what the gateway answers with.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error the browser may see.
//
// Cause never leaves the gateway; it is logged next to the request ID.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError points a message at one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Wrap returns a copy of e carrying cause for the server log.
func (e *AppError) Wrap(cause error) *AppError {
	wrapped := *e
	wrapped.Cause = cause
	return &wrapped
}

// # Constructors

// NotFound names the missing resource, e.g. NotFound("Profile").
func NotFound(resource string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: resource + " not found", HTTPStatus: http.StatusNotFound}
}

// Unauthorized covers rejected credentials, missing tokens and expired sessions.
func Unauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, HTTPStatus: http.StatusUnauthorized}
}

// Conflict reports an operation overtaken by a logout or a duplicate account.
func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, HTTPStatus: http.StatusConflict}
}

// ValidationError rejects a form, optionally per field.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, HTTPStatus: http.StatusBadRequest, Details: details}
}

// RateLimited passes the backend's throttling on to the browser.
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable reports a backend or store the gateway could not reach.
func ServiceUnavailable(msg string, cause error) *AppError {
	return &AppError{Code: "SERVICE_UNAVAILABLE", Message: msg, HTTPStatus: http.StatusServiceUnavailable, Cause: cause}
}

// As returns the [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

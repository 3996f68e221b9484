// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
)

// msgDatabaseUnavailable is shown when the database cannot answer in time.
const msgDatabaseUnavailable = "The service is temporarily unavailable"

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound.Wrap(cause)
	}

	// 2. Timeouts and connection loss are transient
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || isConnectionFailure(err) {
		return apperr.ServiceUnavailable(msgDatabaseUnavailable, cause)
	}

	// 3. Everything else is an Internal Server Error
	return apperr.Internal(cause)
}

// isConnectionFailure matches SQLSTATE class 08 (connection exception).
func isConnectionFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
}

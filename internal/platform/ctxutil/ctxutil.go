// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shopfront/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Viewer Identity

// Viewer identifies the browser session behind a request.
//
// The session middleware stores a pointer so that handlers deeper in the chain
// can record the resolved user for the request log line.
type Viewer struct {
	SessionID string
	UserID    string
}

// WithViewer returns a new context with the provided viewer attached.
func WithViewer(ctx context.Context, viewer *Viewer) context.Context {
	return context.WithValue(ctx, ctxkey.KeyViewer, viewer)
}

// GetViewer retrieves the [*Viewer] from the context, or nil.
func GetViewer(ctx context.Context) *Viewer {
	viewer, ok := ctx.Value(ctxkey.KeyViewer).(*Viewer)
	if !ok {
		return nil
	}
	return viewer
}

// GetSessionID returns the browser session id, or an empty string.
func GetSessionID(ctx context.Context) string {
	if viewer := GetViewer(ctx); viewer != nil {
		return viewer.SessionID
	}
	return ""
}

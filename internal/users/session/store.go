// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
)

// ErrSkipWrite may be returned by an [Store.Update] callback to leave the
// stored session untouched without failing the call.
var ErrSkipWrite = errors.New("session: skip write")

// # Session Data Access

// Store defines the persistence contract for browser sessions.
//
// Only the [Provider] writes through it. Implementations must make Update
// atomic for a single session id. Sessions are never deleted explicitly: a
// signed-out session keeps its epoch, and idle ones expire with the TTL.
type Store interface {

	/*
		Get returns the session stored under id, or a fresh empty session
		carrying that id when none exists.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *Session: Stored or empty session
		  - error: Storage failures
	*/
	Get(ctx context.Context, id string) (*Session, error)

	/*
		Update loads the session, applies mutate and stores the result atomically.

		Description: If mutate returns [ErrSkipWrite] nothing is written and the
		unmodified session is returned with a nil error. Any other error aborts.

		Parameters:
		  - ctx: context.Context
		  - id: string
		  - mutate: func(*Session) error

		Returns:
		  - *Session: The session after the update
		  - error: Callback or storage failures
	*/
	Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error)
}

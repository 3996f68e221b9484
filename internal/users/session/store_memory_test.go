// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/sec"
)

/*
TestMemoryStore_GetMissing returns an empty session carrying the id.
*/
func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	session, err := store.Get(context.Background(), "sid-1")

	require.NoError(t, err)
	assert.Equal(t, "sid-1", session.ID)
	assert.Empty(t, session.Token)
	assert.Nil(t, session.User)
}

/*
TestMemoryStore_UpdateIsolation ensures callers never alias stored state.
*/
func TestMemoryStore_UpdateIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	updated, err := store.Update(ctx, "sid-1", func(session *Session) error {
		session.Token = "tok"
		session.User = &User{ID: "u1", Role: sec.NewRoleSet(sec.RoleSeller), StoreLinks: []StoreLink{{StoreID: "s1"}}}
		return nil
	})
	require.NoError(t, err)

	updated.User.StoreLinks[0].StoreID = "mutated"
	updated.Token = "mutated"

	stored, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", stored.Token)
	assert.Equal(t, "s1", stored.User.StoreLinks[0].StoreID)
}

/*
TestMemoryStore_UpdateErrors covers skipped writes and aborted callbacks.
*/
func TestMemoryStore_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, err := store.Update(ctx, "sid-1", func(session *Session) error {
		session.Token = "tok"
		return nil
	})
	require.NoError(t, err)

	t.Run("skip_write", func(t *testing.T) {
		session, err := store.Update(ctx, "sid-1", func(session *Session) error {
			session.Token = "ignored"
			return ErrSkipWrite
		})
		require.NoError(t, err)
		assert.Equal(t, "tok", session.Token)
	})

	t.Run("callback_error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := store.Update(ctx, "sid-1", func(session *Session) error {
			session.Token = "ignored"
			return boom
		})
		require.ErrorIs(t, err, boom)

		stored, _ := store.Get(ctx, "sid-1")
		assert.Equal(t, "tok", stored.Token)
	})
}

/*
TestMemoryStore_Expiry drops sessions idle for longer than the TTL.
*/
func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	_, err := store.Update(ctx, "sid-1", func(session *Session) error {
		session.Token = "tok"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	now = now.Add(59 * time.Second)
	stored, _ := store.Get(ctx, "sid-1")
	assert.Equal(t, "tok", stored.Token)

	now = now.Add(time.Second)
	stored, _ = store.Get(ctx, "sid-1")
	assert.Empty(t, stored.Token)
	assert.Equal(t, 0, store.Len())
}

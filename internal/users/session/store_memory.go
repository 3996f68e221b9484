// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// MemoryStore keeps sessions in process memory.
//
// Sessions idle for longer than the TTL are treated as absent and removed by
// the background sweeper.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get implements [Store].
func (store *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.load(id), nil
}

// Update implements [Store].
func (store *MemoryStore) Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	working := store.load(id)

	if err := mutate(working); err != nil {
		if errors.Is(err, ErrSkipWrite) {
			return store.load(id), nil
		}
		return nil, err
	}

	now := store.now()
	working.ID = id
	working.UpdatedAt = now
	store.sessions[id] = memoryEntry{session: *copySession(working), expiresAt: now.Add(store.ttl)}

	return working, nil
}

// StartSweeper removes idle sessions until ctx is cancelled.
func (store *MemoryStore) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(constants.SessionSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				store.sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Len returns the number of live sessions.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sweepLocked()
	return len(store.sessions)
}

func (store *MemoryStore) sweep() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sweepLocked()
}

func (store *MemoryStore) sweepLocked() {
	now := store.now()
	for id, entry := range store.sessions {
		if !now.Before(entry.expiresAt) {
			delete(store.sessions, id)
		}
	}
}

// load returns a private copy of the stored session, or an empty one. Caller holds mu.
func (store *MemoryStore) load(id string) *Session {
	entry, found := store.sessions[id]
	if !found || !store.now().Before(entry.expiresAt) {
		return &Session{ID: id}
	}
	return copySession(&entry.session)
}

func copySession(session *Session) *Session {
	copied := *session
	copied.User = session.User.clone()
	return &copied
}

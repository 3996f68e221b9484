// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shopfront/internal/platform/constants"
)

// maxUpdateRetries bounds optimistic-lock retries when two requests of the
// same browser race on one session.
const maxUpdateRetries = 8

// ErrUpdateContention is returned when a session kept changing under Update.
var ErrUpdateContention = errors.New("session: too much contention on session update")

// RedisStore implements [Store] using Redis, one JSON value per session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

/*
Get returns the stored session, or an empty one.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Session: Stored or empty session
  - error: Connectivity or decoding errors
*/
func (store *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	return store.read(ctx, store.client, id)
}

/*
Update performs an optimistic read-modify-write under WATCH.

Description: The key is watched, read, mutated and written back in a
MULTI/EXEC block. A concurrent write aborts the transaction and the whole
cycle is retried, so mutate may run more than once.

Parameters:
  - ctx: context.Context
  - id: string
  - mutate: func(*Session) error

Returns:
  - *Session: Session after the update
  - error: Callback errors, storage errors or [ErrUpdateContention]
*/
func (store *RedisStore) Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	key := store.key(id)

	var result *Session
	var mutateErr error

	transaction := func(tx *redis.Tx) error {
		session, err := store.read(ctx, tx, id)
		if err != nil {
			return err
		}

		original := copySession(session)

		if err := mutate(session); err != nil {
			if errors.Is(err, ErrSkipWrite) {
				result = original
				return nil
			}
			mutateErr = err
			return err
		}

		session.ID = id
		session.UpdatedAt = store.now()

		payload, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("redis_session_encode_failed: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, store.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = session
		return nil
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		mutateErr = nil

		err := store.client.Watch(ctx, transaction, key)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case mutateErr != nil:
			return nil, mutateErr
		default:
			return nil, fmt.Errorf("redis_session_update_failed: %w", err)
		}
	}

	return nil, ErrUpdateContention
}

// read loads a session through any command issuer (client or watched transaction).
func (store *RedisStore) read(ctx context.Context, reader redis.Cmdable, id string) (*Session, error) {
	payload, err := reader.Get(ctx, store.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Session{ID: id}, nil
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	session.ID = id

	return session, nil
}

func (store *RedisStore) key(id string) string {
	return constants.RedisPrefixSession + id
}

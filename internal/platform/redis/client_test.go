// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/taibuivan/shopfront/internal/platform/redis"
)

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := redisclient.NewClient(context.Background(), "redis://"+server.Addr()+"/0", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, redisclient.Ping(context.Background(), client))

	server.Close()
	assert.Error(t, redisclient.Ping(context.Background(), client))
}

func TestParseOptions(t *testing.T) {
	options, err := redisclient.ParseOptions("redis://:pw@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", options.Addr)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, 10, options.PoolSize)

	_, err = redisclient.ParseOptions("http://cache")
	assert.ErrorContains(t, err, "redis: invalid URL")
}

// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client behind the shared role memo and
the content cache.

Every entry the portal writes carries a TTL. Role entries are bounded by the
session that produced them. Redis is never a source of truth: callers keep
serving when it is down and only readiness reports the outage.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second

	// DefaultPoolSize is used when Settings.PoolSize is not positive.
	DefaultPoolSize = 10
)

// Settings is the portal's view of a Redis connection.
type Settings struct {
	URL      string
	PoolSize int
}

// Options turns settings into go-redis options.
//
// Idle connections scale with the pool: a fifth kept warm, at most half idle.
func Options(settings Settings) (*redis.Options, error) {
	options, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	poolSize := settings.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	options.PoolSize = poolSize
	options.MinIdleConns = max(1, poolSize/5)
	options.MaxIdleConns = max(options.MinIdleConns, poolSize/2)

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	return options, nil
}

// NewClient connects with settings and pings once before returning.
func NewClient(context stdctx.Context, settings Settings, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(settings)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}

// Check adapts [Ping] to the readiness probe signature.
func Check(client *redis.Client) func(stdctx.Context) error {
	return func(ctx stdctx.Context) error {
		return Ping(ctx, client)
	}
}

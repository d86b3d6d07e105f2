// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

// Package postgres provides a managed PostgreSQL connection pool and
// lifecycle helpers for the blog.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It manages the physical
// database connections (pgxpool) used by the concrete repositories
// in the domain packages.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrfuxi/gae-blog/internal/platform/constants"
)

// Pool settings that do not vary between deployments.
const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Options sizes the pool.
type Options struct {
	MaxConns int32
	MinConns int32
}

// DefaultOptions suits a single small instance.
var DefaultOptions = Options{MaxConns: 10, MinConns: 2}

// ParseConfig builds the pool configuration for dsn without connecting.
//
// Zero or negative sizes fall back to [DefaultOptions], and MinConns is
// clamped to MaxConns.
func ParseConfig(dsn string, options Options) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if options.MaxConns <= 0 {
		options.MaxConns = DefaultOptions.MaxConns
	}
	if options.MinConns < 0 {
		options.MinConns = DefaultOptions.MinConns
	}
	options.MinConns = min(options.MinConns, options.MaxConns)

	poolConfig.MaxConns = options.MaxConns
	poolConfig.MinConns = options.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	// No query may outlive the request that issued it
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10)

	return poolConfig, nil
}

// NewPool creates and validates a new PostgreSQL connection pool for the
// post and account repositories.
func NewPool(ctx context.Context, dsn string, options Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := ParseConfig(dsn, options)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// Validate that we can actually reach the database.
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres pool connected",
		slog.Int("max_conns", int(stats.MaxConns())),
		slog.Int("min_conns", int(poolConfig.MinConns)),
		slog.Int("total_conns", int(stats.TotalConns())),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}

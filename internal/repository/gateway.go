package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

// Gateway owns the process-wide database connection pool. The pool is
// established lazily on first use and cached for the lifetime of the
// process. Concurrent first callers share a single in-flight connection
// attempt (single-flight); a failed attempt is not cached, so the next
// caller retries from scratch.
type Gateway struct {
	connString string

	// connect is swappable in tests; production uses dial.
	connect func(ctx context.Context, connString string) (*pgxpool.Pool, error)

	group singleflight.Group
	mu    sync.RWMutex
	pool  *pgxpool.Pool
}

// NewGateway creates a Gateway for the given connection string. The string
// is not validated here: an empty string fails each Pool call with
// ErrNotConfigured rather than failing process startup.
func NewGateway(connString string) *Gateway {
	return &Gateway{connString: connString, connect: dial}
}

func dial(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	// Fail fast if the database is unreachable instead of queueing work.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Pool returns the shared connection pool, establishing it on first use.
// Safe to call concurrently: all callers during the initial attempt await
// the same connection and receive the same pool.
func (g *Gateway) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if g.connString == "" {
		return nil, ErrNotConfigured
	}

	g.mu.RLock()
	pool := g.pool
	g.mu.RUnlock()
	if pool != nil {
		return pool, nil
	}

	v, err, _ := g.group.Do("connect", func() (any, error) {
		// A winner of a previous flight may have stored the pool already.
		g.mu.RLock()
		p := g.pool
		g.mu.RUnlock()
		if p != nil {
			return p, nil
		}

		p, err := g.connect(ctx, g.connString)
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		g.pool = p
		g.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pgxpool.Pool), nil
}

// Ping verifies database connectivity, connecting first if needed.
func (g *Gateway) Ping(ctx context.Context) error {
	pool, err := g.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close tears down the cached pool. Called once at process shutdown.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
	}
}

// Package cache provides the optional Redis-backed warm cache for the
// biochemistry index's source TSV bytes, so repeated process restarts skip
// re-reading the ~78k-row compound/reaction files from their origin
// (local disk or MinIO) once they're already in Redis.
package cache

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// compoundsCacheKey/reactionsCacheKey are the two entries a CachingSource
// manages; the biochemistry index itself has no other source files.
const (
	compoundsCacheKey = "biochem:compounds"
	reactionsCacheKey = "biochem:reactions"
)

// sourceOpener is the subset of biochem.Source a CachingSource wraps,
// restated locally so this package doesn't need to import internal/domain/biochem
// just for an interface it already structurally satisfies.
type sourceOpener interface {
	OpenCompounds(ctx context.Context) (io.ReadCloser, error)
	OpenReactions(ctx context.Context) (io.ReadCloser, error)
}

// CachingSource wraps a biochem.Source, serving compounds.tsv/reactions.tsv
// from Redis when present and populating Redis on a cache miss. A failed
// Redis read is treated as a miss without logging, and a failed Redis write
// is logged and otherwise ignored — the cache is
// strictly an optimization and must never make biochemistry index loading
// less reliable than reading straight from the underlying source.
type CachingSource struct {
	inner  sourceOpener
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	logger logging.Logger
}

// NewCachingSource connects to cfg.Addr and wraps inner with a CachingSource.
// Connectivity is verified with a PING so callers can fall back to inner
// directly on a misconfigured Redis rather than silently caching nothing.
func NewCachingSource(cfg config.RedisConfig, inner sourceOpener, logger logging.Logger) (*CachingSource, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to connect to redis")
	}

	return &CachingSource{inner: inner, rdb: rdb, ttl: cfg.DefaultTTL, prefix: cfg.KeyPrefix, logger: logger}, nil
}

func (c *CachingSource) OpenCompounds(ctx context.Context) (io.ReadCloser, error) {
	return c.openCached(ctx, compoundsCacheKey, c.inner.OpenCompounds)
}

func (c *CachingSource) OpenReactions(ctx context.Context) (io.ReadCloser, error) {
	return c.openCached(ctx, reactionsCacheKey, c.inner.OpenReactions)
}

func (c *CachingSource) openCached(ctx context.Context, key string, fetch func(context.Context) (io.ReadCloser, error)) (io.ReadCloser, error) {
	fullKey := c.prefix + key
	if data, err := c.rdb.Get(ctx, fullKey).Bytes(); err == nil {
		c.logger.Debug("biochem source cache hit", logging.String("key", fullKey))
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	r, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to read source for caching")
	}

	if err := c.rdb.Set(ctx, fullKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to populate biochem source cache", logging.String("key", fullKey), logging.Err(err))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

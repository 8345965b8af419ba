package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scholarlink/recommender/model"
	"github.com/scholarlink/recommender/services"
)

const offersCacheKey = "recommender:offers"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// CachedCatalog decorates a CatalogSource with a Redis-backed TTL cache of
// the full offer catalog. Cache failures are never fatal: every error path
// falls through to the wrapped source. Student lookups are not cached — they
// are cheap single-document reads and profile edits must be visible promptly.
type CachedCatalog struct {
	source services.CatalogSource
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedCatalog wraps source with an offer-catalog cache.
func NewCachedCatalog(source services.CatalogSource, rdb *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{source: source, rdb: rdb, ttl: ttl}
}

// GetStudent delegates to the wrapped source.
func (c *CachedCatalog) GetStudent(ctx context.Context, id string) (model.Student, error) {
	return c.source.GetStudent(ctx, id)
}

// GetOffer delegates to the wrapped source when it supports single-offer
// lookup. Single-offer reads are not cached.
func (c *CachedCatalog) GetOffer(ctx context.Context, id string) (model.Offer, error) {
	getter, ok := c.source.(interface {
		GetOffer(ctx context.Context, id string) (model.Offer, error)
	})
	if !ok {
		return model.Offer{}, fmt.Errorf("catalog source does not support single-offer lookup")
	}
	return getter.GetOffer(ctx, id)
}

// GetAllOffers serves the offer catalog from cache when fresh, falling
// through to the wrapped source on miss or cache error.
func (c *CachedCatalog) GetAllOffers(ctx context.Context) ([]model.Offer, error) {
	cached, err := c.rdb.Get(ctx, offersCacheKey).Bytes()
	if err == nil {
		var offers []model.Offer
		if jsonErr := json.Unmarshal(cached, &offers); jsonErr == nil {
			return offers, nil
		}
		logrus.WithField("component", "catalog").Warn("Dropping undecodable cached offer catalog")
	} else if err != redis.Nil {
		logrus.WithField("component", "catalog").Debugf("Offer cache read failed, falling through: %v", err)
	}

	offers, err := c.source.GetAllOffers(ctx)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(offers); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, offersCacheKey, payload, c.ttl).Err(); setErr != nil {
			logrus.WithField("component", "catalog").Debugf("Offer cache write failed: %v", setErr)
		}
	}

	return offers, nil
}

// Invalidate drops the cached offer catalog so the next fetch hits the
// wrapped source. Called on periodic and manual refreshes.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, offersCacheKey).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("invalidating offer cache: %w", err)
	}
	return nil
}

// Package cache provides an optional Redis-backed cache for the motorcycle
// catalog. A nil Redis client disables caching entirely; every method then
// falls straight through to the loader.
package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"torqrides/internal/db"
)

const catalogTTL = 60 * time.Second

type CatalogCache struct {
	client *redis.Client
	flight *FlightGroup
}

// NewCatalogCache wraps a Redis client. The client may be nil.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client, flight: NewFlightGroup()}
}

// NewRedisClient instantiates a Redis client from environment variables:
// REDIS_ADDR (host:port), REDIS_PASSWORD, REDIS_DB and REDIS_TLS. Returns nil
// when REDIS_ADDR is unset or the server cannot be reached, in which case the
// application runs without a cache.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	var tlsConf *tls.Config
	if tlsEnv := os.Getenv("REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
		tlsConf = &tls.Config{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        dbNum,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, catalog cache disabled: %v", addr, err)
		return nil
	}
	return client
}

// ListMotorcycles returns the cached catalog for a category filter, loading
// it through load on a miss. Concurrent misses for the same key share a
// single load via the flight group, so a cold cache never stampedes the
// database.
func (c *CatalogCache) ListMotorcycles(category string, load func() ([]db.Motorcycle, error)) ([]db.Motorcycle, error) {
	if c == nil || c.client == nil {
		return load()
	}

	key := "catalog:" + category
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var motorcycles []db.Motorcycle
		if err := json.Unmarshal(raw, &motorcycles); err == nil {
			return motorcycles, nil
		}
		// Corrupt entry; fall through and reload.
	}

	v, err := c.flight.Do(key, func() (any, error) {
		motorcycles, err := load()
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(motorcycles); err == nil {
			setCtx, setCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer setCancel()
			if err := c.client.Set(setCtx, key, raw, catalogTTL).Err(); err != nil {
				log.Printf("Failed to store catalog cache entry %s: %v", key, err)
			}
		}
		return motorcycles, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]db.Motorcycle), nil
}

// Invalidate drops every catalog entry. Called after admin catalog writes.
func (c *CatalogCache) Invalidate() {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	iter := c.client.Scan(ctx, 0, "catalog:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("Failed to invalidate catalog cache entry %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Error scanning catalog cache keys: %v", err)
	}
}

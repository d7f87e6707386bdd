package redis

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

const geocodeTTL = 24 * time.Hour

// GeocodeCache stores resolved coordinates per address.
// Key format: geocode:<sha1 of lowercased trimmed address>
type GeocodeCache struct {
	client *redis.Client
}

// NewGeocodeCache creates a GeocodeCache wrapping the given Redis client.
func NewGeocodeCache(client *redis.Client) *GeocodeCache {
	return &GeocodeCache{client: client}
}

// Get returns the cached coordinate for address and whether it was present.
func (c *GeocodeCache) Get(ctx context.Context, address string) (domain.Coordinate, bool, error) {
	raw, err := c.client.Get(ctx, c.key(address)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.Coordinate{}, false, nil
		}
		return domain.Coordinate{}, false, fmt.Errorf("geocode cache get: %w", err)
	}

	var coord domain.Coordinate
	if err := json.Unmarshal(raw, &coord); err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("geocode cache decode: %w", err)
	}
	return coord, true, nil
}

// Put records a resolved coordinate (expires after geocodeTTL).
func (c *GeocodeCache) Put(ctx context.Context, address string, coord domain.Coordinate) error {
	raw, err := json.Marshal(coord)
	if err != nil {
		return fmt.Errorf("geocode cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(address), raw, geocodeTTL).Err()
}

func (c *GeocodeCache) key(address string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(address))))
	return fmt.Sprintf("geocode:%x", sum)
}

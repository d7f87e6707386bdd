package maps

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// GeocodeCache is the coordinate cache consulted before the provider.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Coordinate, bool, error)
	Put(ctx context.Context, address string, coord domain.Coordinate) error
}

// CachedGeocoder decorates a Geocoder with a read-through cache. Cache
// failures fall through to the provider; only resolved addresses are stored.
type CachedGeocoder struct {
	inner ports.Geocoder
	cache GeocodeCache
	log   zerolog.Logger
}

func NewCachedGeocoder(inner ports.Geocoder, cache GeocodeCache, log zerolog.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache, log: log}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	coord, hit, err := g.cache.Get(ctx, address)
	if err != nil {
		g.log.Warn().Err(err).Msg("geocode cache read failed, querying provider")
	} else if hit {
		metrics.GeocodeRequestsTotal.WithLabelValues("cache_hit").Inc()
		return coord, nil
	}

	coord, err = g.inner.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := g.cache.Put(ctx, address, coord); err != nil {
		g.log.Warn().Err(err).Msg("geocode cache write failed")
	}
	return coord, nil
}

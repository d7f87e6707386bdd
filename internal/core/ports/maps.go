package ports

import (
	"context"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// Geocoder resolves a free-text address to a coordinate.
// An unresolved address surfaces as domain.ErrUnresolvedAddress.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}

// RoutePlanner requests a multi-stop route from the external mapping provider.
// The returned payload is provider-versioned and treated as opaque.
type RoutePlanner interface {
	Route(ctx context.Context, origin, destination, waypoints, mode string, optimize bool) ([]byte, error)
}

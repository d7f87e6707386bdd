package ports

import (
	"context"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// RouteInput carries the parameters for resolving a multi-stop route.
type RouteInput struct {
	Origin      string
	Destination string
	Stops       []string // delivery addresses in visit-candidate order
}

// RouteService resolves a drivable route plus per-stop markers.
type RouteService interface {
	// Resolve requests an optimized motorcycle route through all stops and
	// geocodes each stop into a marker. Markers are positionally aligned with
	// input stops. Any provider failure aborts the whole operation; there is
	// no partial result.
	Resolve(ctx context.Context, input RouteInput) (*domain.RouteResult, error)
}

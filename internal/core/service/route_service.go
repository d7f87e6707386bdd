package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

const (
	routeMode = "motorcycle"

	// waypointDelimiter replaces spaces inside a stop address in the
	// provider's points parameter.
	waypointDelimiter = "%"

	maxConcurrentGeocodes = 8
)

type routeService struct {
	geocoder ports.Geocoder
	planner  ports.RoutePlanner
	log      zerolog.Logger
}

// NewRouteService returns a RouteService orchestrating the routing and
// geocoding providers.
func NewRouteService(geocoder ports.Geocoder, planner ports.RoutePlanner, log zerolog.Logger) ports.RouteService {
	return &routeService{geocoder: geocoder, planner: planner, log: log}
}

// Resolve requests an optimize-enabled motorcycle route through all stops and
// geocodes each stop into a waypoint marker. Geocoding fans out concurrently
// but each result is written at its stop's index, so marker order always
// matches input order regardless of arrival order. Any sub-request failure
// aborts the whole resolution.
func (s *routeService) Resolve(ctx context.Context, input ports.RouteInput) (*domain.RouteResult, error) {
	directions, err := s.planner.Route(ctx, input.Origin, input.Destination, encodeWaypoints(input.Stops), routeMode, true)
	if err != nil {
		return nil, fmt.Errorf("resolve route: %w", err)
	}

	markers := make([]domain.WaypointMarker, len(input.Stops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(max(len(input.Stops), 1), maxConcurrentGeocodes))
	for i, stop := range input.Stops {
		i, stop := i, stop
		g.Go(func() error {
			position, err := s.geocoder.Geocode(gctx, stop)
			if err != nil {
				return fmt.Errorf("geocode stop %q: %w", stop, err)
			}
			markers[i] = domain.WaypointMarker{
				Label:    domain.AddressLabel(stop),
				Position: position,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve route: %w", err)
	}

	s.log.Info().
		Str("origin", input.Origin).
		Str("destination", input.Destination).
		Int("stops", len(input.Stops)).
		Msg("route resolved")

	return &domain.RouteResult{
		Origin:      input.Origin,
		Destination: input.Destination,
		Stops:       input.Stops,
		Directions:  directions,
		Markers:     markers,
	}, nil
}

// encodeWaypoints builds the provider points parameter: each stop trimmed,
// internal spaces replaced by the provider delimiter, stops joined with ";".
func encodeWaypoints(stops []string) string {
	var b strings.Builder
	for _, stop := range stops {
		b.WriteString(strings.ReplaceAll(strings.TrimSpace(stop), " ", waypointDelimiter))
		b.WriteString(";")
	}
	return b.String()
}

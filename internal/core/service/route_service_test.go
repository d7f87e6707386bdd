package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

func TestResolveRoute(t *testing.T) {
	stops := []string{
		"123 Ly Thuong Kiet, Quận Hải Châu, Đà Nẵng",
		"45 Tran Phu, Quận Cẩm Lệ, Đà Nẵng",
		"67 Nguyen Van Linh, Quận Thanh Khê, Đà Nẵng",
	}
	geocoder := &stubGeocoder{positions: map[string]domain.Coordinate{
		stops[0]: {Lat: 16.0678, Lng: 108.2208},
		stops[1]: {Lat: 16.0544, Lng: 108.2022},
		stops[2]: {Lat: 16.0639, Lng: 108.2099},
	}}
	planner := &stubPlanner{payload: []byte(`{"code":"ok"}`)}
	svc := NewRouteService(geocoder, planner, zerolog.Nop())

	result, err := svc.Resolve(context.Background(), ports.RouteInput{
		Origin:      "warehouse",
		Destination: "depot",
		Stops:       stops,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(planner.calls) != 1 {
		t.Fatalf("expected one planner call, got %d", len(planner.calls))
	}
	call := planner.calls[0]
	if call.mode != "motorcycle" {
		t.Errorf("mode = %q, want motorcycle", call.mode)
	}
	if !call.optimize {
		t.Errorf("optimize must be enabled")
	}
	if call.origin != "warehouse" || call.destination != "depot" {
		t.Errorf("origin/destination = %q/%q", call.origin, call.destination)
	}

	if len(result.Markers) != len(stops) {
		t.Fatalf("got %d markers for %d stops", len(result.Markers), len(stops))
	}
	for i, stop := range stops {
		m := result.Markers[i]
		if m.Label != domain.AddressLabel(stop) {
			t.Errorf("marker %d label = %q, want %q", i, m.Label, domain.AddressLabel(stop))
		}
		if m.Position != geocoder.positions[stop] {
			t.Errorf("marker %d position = %+v, want %+v", i, m.Position, geocoder.positions[stop])
		}
	}
	if string(result.Directions) != `{"code":"ok"}` {
		t.Errorf("directions payload not passed through: %s", result.Directions)
	}
}

func TestResolveRouteEncodesWaypoints(t *testing.T) {
	stops := []string{
		"  123 Ly Thuong Kiet, Quận Hải Châu ",
		"45 Tran Phu",
	}
	geocoder := &stubGeocoder{positions: map[string]domain.Coordinate{
		stops[0]: {Lat: 1, Lng: 1},
		stops[1]: {Lat: 2, Lng: 2},
	}}
	planner := &stubPlanner{payload: []byte(`{}`)}
	svc := NewRouteService(geocoder, planner, zerolog.Nop())

	if _, err := svc.Resolve(context.Background(), ports.RouteInput{Stops: stops}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := "123%Ly%Thuong%Kiet,%Quận%Hải%Châu;45%Tran%Phu;"
	if got := planner.calls[0].waypoints; got != want {
		t.Errorf("waypoints = %q, want %q", got, want)
	}
}

func TestResolveRouteEmptyStops(t *testing.T) {
	planner := &stubPlanner{payload: []byte(`{}`)}
	svc := NewRouteService(&stubGeocoder{}, planner, zerolog.Nop())

	result, err := svc.Resolve(context.Background(), ports.RouteInput{
		Origin:      "warehouse",
		Destination: "depot",
	})
	if err != nil {
		t.Fatalf("Resolve with no stops: %v", err)
	}
	if len(result.Markers) != 0 {
		t.Errorf("expected no markers, got %d", len(result.Markers))
	}
	if planner.calls[0].waypoints != "" {
		t.Errorf("waypoints = %q, want empty", planner.calls[0].waypoints)
	}
}

func TestResolveRouteGeocodeFailureAborts(t *testing.T) {
	stops := []string{"good one", "bad one", "another good"}
	geocoder := &stubGeocoder{
		positions: map[string]domain.Coordinate{
			stops[0]: {Lat: 1, Lng: 1},
			stops[2]: {Lat: 3, Lng: 3},
		},
		failOn: "bad one",
	}
	planner := &stubPlanner{payload: []byte(`{}`)}
	svc := NewRouteService(geocoder, planner, zerolog.Nop())

	result, err := svc.Resolve(context.Background(), ports.RouteInput{Stops: stops})
	if err == nil {
		t.Fatalf("expected error when a stop cannot be geocoded")
	}
	if result != nil {
		t.Errorf("no partial result allowed, got %+v", result)
	}
}

func TestResolveRoutePlannerFailureAborts(t *testing.T) {
	geocoder := &stubGeocoder{positions: map[string]domain.Coordinate{"a": {Lat: 1, Lng: 1}}}
	planner := &stubPlanner{err: domain.ErrRouteProvider}
	svc := NewRouteService(geocoder, planner, zerolog.Nop())

	result, err := svc.Resolve(context.Background(), ports.RouteInput{Stops: []string{"a"}})
	if err == nil {
		t.Fatalf("expected error when planner fails")
	}
	if result != nil {
		t.Errorf("no partial result allowed, got %+v", result)
	}
	if len(geocoder.calls) != 0 {
		t.Errorf("geocoding must not run when the route request fails")
	}
}

func TestEncodeWaypoints(t *testing.T) {
	tests := []struct {
		name  string
		stops []string
		want  string
	}{
		{"none", nil, ""},
		{"single", []string{"45 Tran Phu"}, "45%Tran%Phu;"},
		{"trimmed", []string{"  45 Tran Phu  "}, "45%Tran%Phu;"},
		{"multiple", []string{"a b", "c"}, "a%b;c;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeWaypoints(tt.stops); got != tt.want {
				t.Errorf("encodeWaypoints(%v) = %q, want %q", tt.stops, got, tt.want)
			}
		})
	}
}

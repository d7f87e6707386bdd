package domain

import "encoding/json"

// Coordinate is a geographic point returned by geocoding.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WaypointMarker pairs a human-readable label with the geocoded position of
// one stop, for display on the courier's map.
type WaypointMarker struct {
	Label    string     `json:"label"`
	Position Coordinate `json:"position"`
}

// RouteResult is the outcome of resolving a multi-stop route. Directions is
// the raw provider payload, kept opaque; Markers is positionally aligned with
// Stops, one marker per stop in input order.
type RouteResult struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Stops       []string         `json:"stops"`
	Directions  json.RawMessage  `json:"directions"`
	Markers     []WaypointMarker `json:"markers"`
}

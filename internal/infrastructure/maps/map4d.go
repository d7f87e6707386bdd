// Package maps implements the Map4D geocoding and routing provider.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/domain"
)

const (
	geocodePath = "/sdk/v2/geocode"
	routePath   = "/sdk/route"

	defaultTimeout = 10 * time.Second

	// resultCodeOK is the provider's success marker; anything else means the
	// address could not be resolved.
	resultCodeOK = "ok"
)

// Config holds the Map4D client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Map4D HTTP API. It implements ports.Geocoder and
// ports.RoutePlanner.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

type geocodeResponse struct {
	Code   string `json:"code"`
	Result []struct {
		Location domain.Coordinate `json:"location"`
	} `json:"result"`
}

// Geocode resolves a free-text address to a coordinate. A non-"ok" code or an
// empty result array surfaces as domain.ErrUnresolvedAddress.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("address", address)

	body, err := c.get(ctx, geocodePath, query)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Coordinate{}, fmt.Errorf("geocode: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return domain.Coordinate{}, fmt.Errorf("geocode: decode response: %w", err)
	}
	if resp.Code != resultCodeOK || len(resp.Result) == 0 {
		metrics.GeocodeRequestsTotal.WithLabelValues("unresolved").Inc()
		return domain.Coordinate{}, fmt.Errorf("%w: %q (code %s)", domain.ErrUnresolvedAddress, address, resp.Code)
	}

	metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
	return resp.Result[0].Location, nil
}

// Route requests a multi-stop route and returns the raw provider payload.
func (c *Client) Route(ctx context.Context, origin, destination, waypoints, mode string, optimize bool) ([]byte, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("origin", origin)
	query.Set("destination", destination)
	query.Set("points", waypoints)
	query.Set("mode", mode)
	query.Set("optimize", fmt.Sprintf("%t", optimize))

	body, err := c.get(ctx, routePath, query)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRouteProvider, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrRouteProvider, err)
	}
	if res.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", res.StatusCode).Str("path", path).Msg("map4d non-success response")
		return nil, fmt.Errorf("%w: status %d", domain.ErrRouteProvider, res.StatusCode)
	}
	return body, nil
}

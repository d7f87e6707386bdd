package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// RouteHandler exposes multi-stop route resolution.
type RouteHandler struct {
	service ports.RouteService
}

func NewRouteHandler(service ports.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

type resolveRouteRequest struct {
	Origin      string   `json:"origin"      validate:"required"`
	Destination string   `json:"destination" validate:"required"`
	Stops       []string `json:"stops"       validate:"required,min=1,dive,required"`
}

type resolveRouteResponse struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	Stops       []string                `json:"stops"`
	Directions  json.RawMessage         `json:"directions"`
	Markers     []domain.WaypointMarker `json:"markers"`
}

// Resolve handles POST /v1/routes.
//
// @Summary      Resolve an optimized multi-stop route with waypoint markers
// @Tags         routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resolveRouteRequest  true  "Origin, destination and stops"
// @Success      200   {object}  resolveRouteResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/routes [post]
func (h *RouteHandler) Resolve(c echo.Context) error {
	var req resolveRouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	result, err := h.service.Resolve(c.Request().Context(), ports.RouteInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		Stops:       req.Stops,
	})
	if err != nil {
		return err
	}
	metrics.RouteResolutionDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, resolveRouteResponse{
		Origin:      result.Origin,
		Destination: result.Destination,
		Stops:       result.Stops,
		Directions:  result.Directions,
		Markers:     result.Markers,
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// TransportHandler exposes zone partitioning and courier assignment.
type TransportHandler struct {
	zones       ports.ZoneService
	assignments ports.AssignmentService
	deliveries  ports.DeliveryService
}

func NewTransportHandler(zones ports.ZoneService, assignments ports.AssignmentService, deliveries ports.DeliveryService) *TransportHandler {
	return &TransportHandler{zones: zones, assignments: assignments, deliveries: deliveries}
}

// TransportOrders handles GET /v1/transport-orders: pending deliveries
// grouped by inner-area district.
//
// @Summary      Group pending deliveries by district
// @Tags         transport
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transportOrdersResponse
// @Success      204  "no pending deliveries match an inner-area district"
// @Router       /v1/transport-orders [get]
func (h *TransportHandler) TransportOrders(c echo.Context) error {
	groups, err := h.zones.GroupByDistrict(c.Request().Context())
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	out := make([]districtGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = districtGroupResponse{
			District:   g.District,
			Deliveries: toDeliveryResponses(g.Deliveries),
		}
	}
	return c.JSON(http.StatusOK, transportOrdersResponse{Groups: out})
}

// Assign handles POST /v1/couriers/:courier_id/assignments.
//
// @Summary      Assign a batch of deliveries to a courier
// @Tags         transport
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courier_id  path      string                   true  "Courier id"
// @Param        body        body      assignDeliveriesRequest  true  "Delivery ids to assign"
// @Success      200         {object}  assignDeliveriesResponse
// @Success      204         "empty batch, nothing assigned"
// @Failure      404         {object}  errorResponse
// @Router       /v1/couriers/{courier_id}/assignments [post]
func (h *TransportHandler) Assign(c echo.Context) error {
	courierID := c.Param("courier_id")

	var req assignDeliveriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	batch := make([]domain.Delivery, 0, len(req.DeliveryIDs))
	for _, id := range req.DeliveryIDs {
		d, err := h.deliveries.GetDelivery(ctx, id)
		if err != nil {
			return err
		}
		batch = append(batch, *d)
	}

	assigned, err := h.assignments.Assign(ctx, courierID, batch)
	if err != nil {
		return err
	}
	if len(assigned) == 0 {
		// Explicit no-op: an empty batch persists nothing.
		return c.NoContent(http.StatusNoContent)
	}

	metrics.DeliveriesAssignedTotal.Add(float64(len(assigned)))

	return c.JSON(http.StatusOK, assignDeliveriesResponse{
		CourierID:  courierID,
		Deliveries: toDeliveryResponses(assigned),
	})
}

// intQuery parses an integer query parameter, returning 0 when absent.
func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

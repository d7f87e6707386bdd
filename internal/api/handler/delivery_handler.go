package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// DeliveryHandler handles order intake and the delivery read side.
type DeliveryHandler struct {
	service ports.DeliveryService
}

func NewDeliveryHandler(service ports.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: service}
}

// Create handles POST /v1/deliveries.
//
// @Summary      Record an accepted order as a pending delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDeliveryRequest  true  "Delivery details"
// @Success      201   {object}  createDeliveryResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/deliveries [post]
func (h *DeliveryHandler) Create(c echo.Context) error {
	var req createDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.CreateDelivery(c.Request().Context(), ports.CreateDeliveryInput{
		RecipientName: req.RecipientName,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Note:          req.Note,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return err
	}

	metrics.DeliveriesCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, createDeliveryResponse{
		ID:        result.ID,
		OrderCode: result.OrderCode,
		Status:    result.Status,
		CreatedAt: result.CreatedAt.UTC(),
	})
}

// Get handles GET /v1/deliveries/:id.
//
// @Summary      Get a delivery by id
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Delivery id"
// @Success      200  {object}  deliveryResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c echo.Context) error {
	delivery, err := h.service.GetDelivery(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDeliveryResponse(*delivery))
}

// List handles GET /v1/deliveries.
//
// @Summary      List deliveries
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by lifecycle status"
// @Param        search  query     string  false  "Partial match on order code or recipient"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listDeliveriesResponse
// @Router       /v1/deliveries [get]
func (h *DeliveryHandler) List(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := intQuery(c, "page")
	limit, _ := intQuery(c, "limit")

	result, err := h.service.ListDeliveries(c.Request().Context(), ports.ListDeliveriesInput{
		Role:      role,
		CourierID: userID,
		Status:    c.QueryParam("status"),
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listDeliveriesResponse{
		Data: toDeliveryResponses(result.Items),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

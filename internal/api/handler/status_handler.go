package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// ReportDispatcher is the interface the handler uses to enqueue status reports.
type ReportDispatcher interface {
	Enqueue(report ports.StatusReportInput)
	EnqueueBatch(reports []ports.StatusReportInput)
}

// StatusHandler handles synchronous transitions and asynchronous report ingestion.
type StatusHandler struct {
	service    ports.StatusService
	dispatcher ReportDispatcher
}

func NewStatusHandler(service ports.StatusService, dispatcher ReportDispatcher) *StatusHandler {
	return &StatusHandler{service: service, dispatcher: dispatcher}
}

type statusReportRequest struct {
	DeliveryID string     `json:"delivery_id" validate:"required"`
	Succeeded  *bool      `json:"succeeded"   validate:"required"`
	Source     string     `json:"source"      validate:"required"`
	ReportedAt *time.Time `json:"reported_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Update handles PATCH /v1/deliveries/:id/status, the synchronous transition.
//
// @Summary      Advance a delivery to its terminal status
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Delivery id"
// @Param        body  body      updateStatusRequest  true  "Outcome"
// @Success      200   {object}  deliveryResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/deliveries/{id}/status [patch]
func (h *StatusHandler) Update(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	delivery, err := h.service.Transition(c.Request().Context(), c.Param("id"), *req.Succeeded)
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(delivery.Status)).Inc()

	return c.JSON(http.StatusOK, toDeliveryResponse(*delivery))
}

// Receive handles POST /v1/status-reports. Enqueues a single report, returns 202.
//
// @Summary      Ingest a single courier status report
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      statusReportRequest  true  "Status report"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/status-reports [post]
func (h *StatusHandler) Receive(c echo.Context) error {
	var req statusReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toReportInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "report accepted"})
}

// ReceiveBatch handles POST /v1/status-reports/batch. Enqueues a batch, returns 202.
//
// @Summary      Ingest a batch of courier status reports
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []statusReportRequest  true  "Array of status reports"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/status-reports/batch [post]
func (h *StatusHandler) ReceiveBatch(c echo.Context) error {
	var reqs []statusReportRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.StatusReportInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("report[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toReportInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "reports accepted",
		Count:   len(inputs),
	})
}

// toReportInput maps the HTTP request to the dispatcher DTO.
func toReportInput(r statusReportRequest) ports.StatusReportInput {
	reportedAt := time.Now().UTC()
	if r.ReportedAt != nil {
		reportedAt = *r.ReportedAt
	}
	return ports.StatusReportInput{
		DeliveryID: r.DeliveryID,
		Succeeded:  *r.Succeeded,
		Source:     r.Source,
		ReportedAt: reportedAt,
	}
}

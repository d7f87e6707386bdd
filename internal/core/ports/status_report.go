package ports

import "time"

// StatusReportInput is the DTO passed from the transport layer to the
// status-report dispatcher. Couriers report outcomes from the field; the
// dispatcher feeds them to StatusService per delivery, in arrival order.
type StatusReportInput struct {
	DeliveryID string
	Succeeded  bool
	Source     string
	ReportedAt time.Time
}

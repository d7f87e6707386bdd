package ports

import (
	"context"
	"time"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// CreateDeliveryInput carries the order-intake data for a new delivery.
type CreateDeliveryInput struct {
	RecipientName string
	Address       string
	Phone         string
	Email         string
	Note          string
	PaymentStatus string
}

// DeliveryResult is returned by the service after creating a delivery.
type DeliveryResult struct {
	ID        string
	OrderCode string
	Status    string
	CreatedAt time.Time
}

// ListDeliveriesInput carries all parameters for the list endpoint.
type ListDeliveriesInput struct {
	// Role and CourierID enforce access scoping: couriers only see their own
	// assignments, operators see everything.
	Role      string
	CourierID string
	Status    string
	Search    string
	Page      int
	Limit     int
}

// ListDeliveriesResult is returned by ListDeliveries.
type ListDeliveriesResult struct {
	Items      []domain.Delivery
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DeliveryService defines the intake and read-side operations.
type DeliveryService interface {
	CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*DeliveryResult, error)
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, input ListDeliveriesInput) (*ListDeliveriesResult, error)
}

// ZoneService partitions pending deliveries into inner-area district groups.
type ZoneService interface {
	// GroupByDistrict groups every DELIVERING delivery whose parsed district
	// is in the configured inner-area set. Deliveries outside the inner area
	// are omitted. An empty result is not an error.
	GroupByDistrict(ctx context.Context) ([]domain.DistrictGroup, error)
}

// AssignmentService stamps a courier on a batch of deliveries.
type AssignmentService interface {
	// Assign sets the courier on every delivery and persists the batch in a
	// single write. An empty batch is an explicit no-op: (nil, nil), nothing
	// persisted. A missing courier yields domain.ErrCourierNotFound.
	Assign(ctx context.Context, courierID string, deliveries []domain.Delivery) ([]domain.Delivery, error)
}

// StatusService advances deliveries to a terminal status.
type StatusService interface {
	// Transition sets DELIVERED_SUCCESSFULLY or DELIVERY_FAILED, stamps the
	// completion time, persists, and sends the matching notification e-mail.
	// Notification failures are logged, never returned.
	Transition(ctx context.Context, deliveryID string, succeeded bool) (*domain.Delivery, error)
}

package ports

import (
	"context"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// ListDeliveriesFilter carries query parameters for listing deliveries.
type ListDeliveriesFilter struct {
	Status    string // optional: filter by lifecycle status
	CourierID string // optional: scope to one courier's assignments
	Search    string // optional: partial match on order_code or recipient_name
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by the service)
}

// DeliveryRepository defines persistence operations for deliveries.
type DeliveryRepository interface {
	// FindByStatus returns every delivery currently in the given status.
	FindByStatus(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error)
	FindByID(ctx context.Context, id string) (*domain.Delivery, error)
	// Save inserts d when it has no id yet, otherwise replaces the stored
	// document. The persisted delivery (id populated) is returned.
	Save(ctx context.Context, d *domain.Delivery) (*domain.Delivery, error)
	// SaveAll persists the batch in a single write. All-or-nothing from the
	// caller's perspective: any failure is returned without a partial result.
	SaveAll(ctx context.Context, ds []domain.Delivery) ([]domain.Delivery, error)
	// List returns a page of deliveries matching filter and the total count.
	List(ctx context.Context, filter ListDeliveriesFilter) ([]domain.Delivery, int64, error)
}

// CourierRepository resolves couriers from the user store.
type CourierRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Courier, error)
}

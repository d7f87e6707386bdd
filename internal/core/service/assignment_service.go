package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

type assignmentService struct {
	deliveries ports.DeliveryRepository
	couriers   ports.CourierRepository
	log        zerolog.Logger
}

// NewAssignmentService returns an AssignmentService backed by the given stores.
func NewAssignmentService(deliveries ports.DeliveryRepository, couriers ports.CourierRepository, log zerolog.Logger) ports.AssignmentService {
	return &assignmentService{deliveries: deliveries, couriers: couriers, log: log}
}

// Assign stamps courierID on every delivery in the batch and persists them in
// a single write. An empty batch performs no write and returns (nil, nil);
// callers must treat that as an explicit no-op, not a failure.
func (s *assignmentService) Assign(ctx context.Context, courierID string, deliveries []domain.Delivery) ([]domain.Delivery, error) {
	ok, err := s.couriers.Exists(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("assign: check courier: %w", err)
	}
	if !ok {
		return nil, domain.ErrCourierNotFound
	}

	if len(deliveries) == 0 {
		s.log.Debug().Str("courier_id", courierID).Msg("empty assignment batch, nothing to do")
		return nil, nil
	}

	stamped := make([]domain.Delivery, len(deliveries))
	for i, d := range deliveries {
		d.CourierID = courierID
		stamped[i] = d
	}

	saved, err := s.deliveries.SaveAll(ctx, stamped)
	if err != nil {
		return nil, fmt.Errorf("assign: persist batch: %w", err)
	}

	s.log.Info().
		Str("courier_id", courierID).
		Int("deliveries", len(saved)).
		Msg("deliveries assigned")

	return saved, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

const maxPageSize = 100

type deliveryService struct {
	repo ports.DeliveryRepository
	log  zerolog.Logger
}

// NewDeliveryService returns the intake and read-side service.
func NewDeliveryService(repo ports.DeliveryRepository, log zerolog.Logger) ports.DeliveryService {
	return &deliveryService{repo: repo, log: log}
}

// CreateDelivery records an accepted e-commerce order as a pending delivery.
func (s *deliveryService) CreateDelivery(ctx context.Context, input ports.CreateDeliveryInput) (*ports.DeliveryResult, error) {
	delivery := &domain.Delivery{
		OrderCode:     generateOrderCode(),
		RecipientName: input.RecipientName,
		Address:       input.Address,
		Phone:         input.Phone,
		Email:         input.Email,
		Note:          input.Note,
		PaymentStatus: input.PaymentStatus,
		Status:        domain.StatusDelivering,
		CreatedAt:     time.Now().UTC(),
	}

	saved, err := s.repo.Save(ctx, delivery)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create delivery")
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	s.log.Info().Str("delivery_id", saved.ID).Str("order_code", saved.OrderCode).Msg("delivery created")

	return &ports.DeliveryResult{
		ID:        saved.ID,
		OrderCode: saved.OrderCode,
		Status:    string(saved.Status),
		CreatedAt: saved.CreatedAt,
	}, nil
}

func (s *deliveryService) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	return s.repo.FindByID(ctx, id)
}

// ListDeliveries returns a page of deliveries. Couriers are always scoped to
// their own assignments regardless of the requested filter.
func (s *deliveryService) ListDeliveries(ctx context.Context, input ports.ListDeliveriesInput) (*ports.ListDeliveriesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListDeliveriesFilter{
		Status: input.Status,
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	}
	if input.Role == domain.RoleCourier {
		filter.CourierID = input.CourierID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListDeliveriesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// generateOrderCode returns a short unique order reference, DN-XXXXXXXX.
func generateOrderCode() string {
	id := uuid.New()
	return fmt.Sprintf("DN-%X", id[:4])
}

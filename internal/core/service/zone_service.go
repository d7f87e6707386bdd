package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

type zoneService struct {
	repo       ports.DeliveryRepository
	innerAreas map[string]struct{}
	log        zerolog.Logger
}

// NewZoneService returns a ZoneService partitioning against the given
// inner-area district names.
func NewZoneService(repo ports.DeliveryRepository, innerAreas []string, log zerolog.Logger) ports.ZoneService {
	areas := make(map[string]struct{}, len(innerAreas))
	for _, a := range innerAreas {
		areas[a] = struct{}{}
	}
	return &zoneService{repo: repo, innerAreas: areas, log: log}
}

// GroupByDistrict partitions pending deliveries into inner-area district
// groups. Group order is first-seen district order, membership order is
// insertion order, so repeated runs over an unchanged set are stable.
func (s *zoneService) GroupByDistrict(ctx context.Context) ([]domain.DistrictGroup, error) {
	pending, err := s.repo.FindByStatus(ctx, domain.StatusDelivering)
	if err != nil {
		return nil, fmt.Errorf("group by district: %w", err)
	}

	byDistrict := make(map[string]int) // district -> index into groups
	groups := make([]domain.DistrictGroup, 0)
	skipped := 0

	for _, d := range pending {
		district := domain.DistrictFromAddress(d.Address)
		if _, ok := s.innerAreas[district]; !ok {
			// Out-of-zone and malformed addresses stay DELIVERING but are
			// excluded from routed batching.
			skipped++
			continue
		}
		idx, ok := byDistrict[district]
		if !ok {
			idx = len(groups)
			byDistrict[district] = idx
			groups = append(groups, domain.DistrictGroup{District: district})
		}
		groups[idx].Deliveries = append(groups[idx].Deliveries, d)
	}

	s.log.Debug().
		Int("pending", len(pending)).
		Int("groups", len(groups)).
		Int("skipped", skipped).
		Msg("partitioned pending deliveries")

	return groups, nil
}

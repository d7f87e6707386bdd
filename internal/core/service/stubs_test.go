package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// stubDeliveryRepo is a map-backed DeliveryRepository for service tests.
type stubDeliveryRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.Delivery
	order   []string // insertion order, drives FindByStatus
	nextID  int
	findErr error
	saveErr error

	savedBatches [][]domain.Delivery
	savedSingles []domain.Delivery
}

func newStubDeliveryRepo(deliveries ...domain.Delivery) *stubDeliveryRepo {
	r := &stubDeliveryRepo{byID: make(map[string]domain.Delivery)}
	for _, d := range deliveries {
		if d.ID == "" {
			r.nextID++
			d.ID = fmt.Sprintf("d-%d", r.nextID)
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

func (r *stubDeliveryRepo) FindByStatus(_ context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Delivery
	for _, id := range r.order {
		if d := r.byID[id]; d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDeliveryRepo) FindByID(_ context.Context, id string) (*domain.Delivery, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	return &d, nil
}

func (r *stubDeliveryRepo) Save(_ context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *d
	if saved.ID == "" {
		r.nextID++
		saved.ID = fmt.Sprintf("d-%d", r.nextID)
		r.order = append(r.order, saved.ID)
	}
	r.byID[saved.ID] = saved
	r.savedSingles = append(r.savedSingles, saved)
	return &saved, nil
}

func (r *stubDeliveryRepo) SaveAll(_ context.Context, ds []domain.Delivery) ([]domain.Delivery, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Delivery, len(ds))
	for i, d := range ds {
		if d.ID == "" {
			r.nextID++
			d.ID = fmt.Sprintf("d-%d", r.nextID)
			r.order = append(r.order, d.ID)
		}
		r.byID[d.ID] = d
		out[i] = d
	}
	r.savedBatches = append(r.savedBatches, out)
	return out, nil
}

func (r *stubDeliveryRepo) List(_ context.Context, filter ports.ListDeliveriesFilter) ([]domain.Delivery, int64, error) {
	if r.findErr != nil {
		return nil, 0, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Delivery
	for _, id := range r.order {
		d := r.byID[id]
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if filter.CourierID != "" && d.CourierID != filter.CourierID {
			continue
		}
		matched = append(matched, d)
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type stubCourierRepo struct {
	existing map[string]bool
	err      error
}

func (r *stubCourierRepo) Exists(_ context.Context, id string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.existing[id], nil
}

func (r *stubCourierRepo) FindByID(_ context.Context, id string) (*domain.Courier, error) {
	if !r.existing[id] {
		return nil, domain.ErrCourierNotFound
	}
	return &domain.Courier{ID: id}, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *stubNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
	return n.err
}

type stubGeocoder struct {
	mu        sync.Mutex
	positions map[string]domain.Coordinate
	failOn    string
	calls     []string
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) (domain.Coordinate, error) {
	g.mu.Lock()
	g.calls = append(g.calls, address)
	g.mu.Unlock()
	if g.failOn != "" && address == g.failOn {
		return domain.Coordinate{}, domain.ErrUnresolvedAddress
	}
	pos, ok := g.positions[address]
	if !ok {
		return domain.Coordinate{}, domain.ErrUnresolvedAddress
	}
	return pos, nil
}

type plannerCall struct {
	origin      string
	destination string
	waypoints   string
	mode        string
	optimize    bool
}

type stubPlanner struct {
	payload []byte
	err     error
	calls   []plannerCall
}

func (p *stubPlanner) Route(_ context.Context, origin, destination, waypoints, mode string, optimize bool) ([]byte, error) {
	p.calls = append(p.calls, plannerCall{
		origin:      origin,
		destination: destination,
		waypoints:   waypoints,
		mode:        mode,
		optimize:    optimize,
	})
	if p.err != nil {
		return nil, p.err
	}
	return p.payload, nil
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

type stubZoneService struct {
	groups []domain.DistrictGroup
	err    error
}

func (s *stubZoneService) GroupByDistrict(context.Context) ([]domain.DistrictGroup, error) {
	return s.groups, s.err
}

type stubAssignmentService struct {
	assignFn func(ctx context.Context, courierID string, deliveries []domain.Delivery) ([]domain.Delivery, error)
}

func (s *stubAssignmentService) Assign(ctx context.Context, courierID string, deliveries []domain.Delivery) ([]domain.Delivery, error) {
	return s.assignFn(ctx, courierID, deliveries)
}

type stubDeliveryService struct {
	byID     map[string]*domain.Delivery
	createFn func(ctx context.Context, input ports.CreateDeliveryInput) (*ports.DeliveryResult, error)
	listFn   func(ctx context.Context, input ports.ListDeliveriesInput) (*ports.ListDeliveriesResult, error)
}

func (s *stubDeliveryService) CreateDelivery(ctx context.Context, input ports.CreateDeliveryInput) (*ports.DeliveryResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubDeliveryService) GetDelivery(_ context.Context, id string) (*domain.Delivery, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	return d, nil
}

func (s *stubDeliveryService) ListDeliveries(ctx context.Context, input ports.ListDeliveriesInput) (*ports.ListDeliveriesResult, error) {
	return s.listFn(ctx, input)
}

func TestTransportOrders(t *testing.T) {
	zones := &stubZoneService{groups: []domain.DistrictGroup{
		{
			District: "Quận Hải Châu",
			Deliveries: []domain.Delivery{
				{ID: "d-1", OrderCode: "DN-1", Status: domain.StatusDelivering},
				{ID: "d-2", OrderCode: "DN-2", Status: domain.StatusDelivering},
			},
		},
		{
			District: "Quận Sơn Trà",
			Deliveries: []domain.Delivery{
				{ID: "d-3", OrderCode: "DN-3", Status: domain.StatusDelivering},
			},
		},
	}}
	h := NewTransportHandler(zones, &stubAssignmentService{}, &stubDeliveryService{})

	c, rec := newJSONContext(t, http.MethodGet, "/v1/transport-orders", "")

	if err := h.TransportOrders(c); err != nil {
		t.Fatalf("TransportOrders: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp transportOrdersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(resp.Groups))
	}
	if resp.Groups[0].District != "Quận Hải Châu" || len(resp.Groups[0].Deliveries) != 2 {
		t.Errorf("unexpected first group: %+v", resp.Groups[0])
	}
}

func TestTransportOrdersEmpty(t *testing.T) {
	h := NewTransportHandler(&stubZoneService{}, &stubAssignmentService{}, &stubDeliveryService{})

	c, rec := newJSONContext(t, http.MethodGet, "/v1/transport-orders", "")

	if err := h.TransportOrders(c); err != nil {
		t.Fatalf("TransportOrders: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestAssign(t *testing.T) {
	deliveries := &stubDeliveryService{byID: map[string]*domain.Delivery{
		"d-1": {ID: "d-1", OrderCode: "DN-1", Status: domain.StatusDelivering},
		"d-2": {ID: "d-2", OrderCode: "DN-2", Status: domain.StatusDelivering},
	}}
	assignments := &stubAssignmentService{
		assignFn: func(_ context.Context, courierID string, batch []domain.Delivery) ([]domain.Delivery, error) {
			if courierID != "courier-7" {
				t.Errorf("courierID = %q", courierID)
			}
			out := make([]domain.Delivery, len(batch))
			for i, d := range batch {
				d.CourierID = courierID
				out[i] = d
			}
			return out, nil
		},
	}
	h := NewTransportHandler(&stubZoneService{}, assignments, deliveries)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/couriers/courier-7/assignments",
		`{"delivery_ids":["d-1","d-2"]}`)
	c.SetParamNames("courier_id")
	c.SetParamValues("courier-7")

	if err := h.Assign(c); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp assignDeliveriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CourierID != "courier-7" || len(resp.Deliveries) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	for _, d := range resp.Deliveries {
		if d.CourierID != "courier-7" {
			t.Errorf("delivery %s not stamped", d.ID)
		}
	}
}

func TestAssignEmptyBatch(t *testing.T) {
	assignments := &stubAssignmentService{
		assignFn: func(_ context.Context, _ string, batch []domain.Delivery) ([]domain.Delivery, error) {
			if len(batch) != 0 {
				t.Errorf("expected empty batch, got %d", len(batch))
			}
			return nil, nil
		},
	}
	h := NewTransportHandler(&stubZoneService{}, assignments, &stubDeliveryService{})

	c, rec := newJSONContext(t, http.MethodPost, "/v1/couriers/courier-7/assignments",
		`{"delivery_ids":[]}`)
	c.SetParamNames("courier_id")
	c.SetParamValues("courier-7")

	if err := h.Assign(c); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestAssignUnknownCourierPropagates(t *testing.T) {
	deliveries := &stubDeliveryService{byID: map[string]*domain.Delivery{
		"d-1": {ID: "d-1"},
	}}
	assignments := &stubAssignmentService{
		assignFn: func(context.Context, string, []domain.Delivery) ([]domain.Delivery, error) {
			return nil, domain.ErrCourierNotFound
		},
	}
	h := NewTransportHandler(&stubZoneService{}, assignments, deliveries)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/couriers/ghost/assignments",
		`{"delivery_ids":["d-1"]}`)
	c.SetParamNames("courier_id")
	c.SetParamValues("ghost")

	if err := h.Assign(c); err != domain.ErrCourierNotFound {
		t.Fatalf("expected ErrCourierNotFound to propagate, got %v", err)
	}
}

func TestAssignUnknownDelivery(t *testing.T) {
	h := NewTransportHandler(&stubZoneService{}, &stubAssignmentService{}, &stubDeliveryService{})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/couriers/courier-7/assignments",
		`{"delivery_ids":["missing"]}`)
	c.SetParamNames("courier_id")
	c.SetParamValues("courier-7")

	if err := h.Assign(c); err != domain.ErrDeliveryNotFound {
		t.Fatalf("expected ErrDeliveryNotFound to propagate, got %v", err)
	}
}

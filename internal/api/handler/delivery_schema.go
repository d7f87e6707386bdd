package handler

import (
	"time"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createDeliveryRequest struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	Address       string `json:"address"        validate:"required"`
	Phone         string `json:"phone"          validate:"required"`
	Email         string `json:"email"          validate:"required,email"`
	Note          string `json:"note"`
	PaymentStatus string `json:"payment_status" validate:"required,oneof=PAID UNPAID COD"`
}

type assignDeliveriesRequest struct {
	DeliveryIDs []string `json:"delivery_ids"`
}

type updateStatusRequest struct {
	Succeeded *bool `json:"succeeded" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type createDeliveryResponse struct {
	ID        string    `json:"id"`
	OrderCode string    `json:"order_code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type deliveryResponse struct {
	ID            string     `json:"id"`
	OrderCode     string     `json:"order_code"`
	RecipientName string     `json:"recipient_name"`
	Address       string     `json:"address"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Note          string     `json:"note,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	Status        string     `json:"status"`
	CourierID     string     `json:"courier_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

type districtGroupResponse struct {
	District   string             `json:"district"`
	Deliveries []deliveryResponse `json:"deliveries"`
}

type transportOrdersResponse struct {
	Groups []districtGroupResponse `json:"groups"`
}

type assignDeliveriesResponse struct {
	CourierID  string             `json:"courier_id"`
	Deliveries []deliveryResponse `json:"deliveries"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listDeliveriesResponse struct {
	Data       []deliveryResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toDeliveryResponse(d domain.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:            d.ID,
		OrderCode:     d.OrderCode,
		RecipientName: d.RecipientName,
		Address:       d.Address,
		Phone:         d.Phone,
		Email:         d.Email,
		Note:          d.Note,
		PaymentStatus: d.PaymentStatus,
		Status:        string(d.Status),
		CourierID:     d.CourierID,
		CreatedAt:     d.CreatedAt.UTC(),
		DeliveredAt:   d.DeliveredAt,
	}
}

func toDeliveryResponses(ds []domain.Delivery) []deliveryResponse {
	out := make([]deliveryResponse, len(ds))
	for i, d := range ds {
		out[i] = toDeliveryResponse(d)
	}
	return out
}

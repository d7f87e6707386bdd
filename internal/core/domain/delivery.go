package domain

import (
	"errors"
	"time"
)

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

const (
	StatusDelivering            DeliveryStatus = "DELIVERING"
	StatusDeliveredSuccessfully DeliveryStatus = "DELIVERED_SUCCESSFULLY"
	StatusDeliveryFailed        DeliveryStatus = "DELIVERY_FAILED"
)

// IsTerminal reports whether no further transition is defined from s.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusDeliveredSuccessfully || s == StatusDeliveryFailed
}

var ErrDeliveryNotFound = errors.New("delivery not found")
var ErrCourierNotFound = errors.New("courier not found")
var ErrUnresolvedAddress = errors.New("address could not be resolved")
var ErrRouteProvider = errors.New("routing provider request failed")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// Delivery is the core aggregate: one parcel on its way to a recipient.
// CourierID is empty until an operator assigns the batch; DeliveredAt is set
// only on a terminal transition.
type Delivery struct {
	ID            string         `json:"id"`
	OrderCode     string         `json:"order_code"`
	RecipientName string         `json:"recipient_name"`
	Address       string         `json:"address"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Note          string         `json:"note,omitempty"`
	PaymentStatus string         `json:"payment_status"`
	Status        DeliveryStatus `json:"status"`
	CourierID     string         `json:"courier_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty"`
}

// DistrictGroup is a derived batch of pending deliveries sharing one
// inner-area district. Recomputed on every partitioning request, never stored.
type DistrictGroup struct {
	District   string     `json:"district"`
	Deliveries []Delivery `json:"deliveries"`
}

// Courier is the assignable actor. Owned by the user store; the delivery
// core only references it by id.
type Courier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

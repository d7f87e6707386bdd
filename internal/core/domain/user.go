package domain

import "time"

const (
	RoleOperator = "operator"
	RoleCourier  = "courier"
)

// User models an authenticated actor: a dispatch operator or a courier.
// Couriers double as assignment targets; their user id is the courier id.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

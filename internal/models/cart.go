package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one row of a user's cart. At most one row exists per
// (user, product) pair; a repeated add replaces the quantity.
type CartItem struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CartResponse struct {
	Items []CartItem `json:"items"`
}

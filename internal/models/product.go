package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Image       string  `json:"image,omitempty" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"required"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Description string  `json:"description,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,url"`
	Category    *string  `json:"category,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Description *string  `json:"description,omitempty"`
}

package lineitems

import "time"

// StoreName is the snapshot key of the saved line-item catalog.
const StoreName = "saved-line-items"

type SavedLineItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DefaultQuantity float64   `json:"default_quantity"`
	DefaultPrice    float64   `json:"default_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateItemRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description,omitempty" validate:"max=1000"`
	DefaultQuantity *float64 `json:"default_quantity,omitempty" validate:"omitempty,gte=0"`
	DefaultPrice    float64  `json:"default_price" validate:"gte=0"`
}

type UpdateItemRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	DefaultQuantity *float64 `json:"default_quantity,omitempty" validate:"omitempty,gte=0"`
	DefaultPrice    *float64 `json:"default_price,omitempty" validate:"omitempty,gte=0"`
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// AddItemRequest - POST /cart/items
type AddItemRequest struct {
	ProductID int64  `json:"product_id"`
	Memory    string `json:"memory"`
	Color     string `json:"color"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Memory, validation.Length(0, 50)),
		validation.Field(&r.Color, validation.Length(0, 50)),
	)
}

func (r AddItemRequest) Options() Options {
	return Options{Memory: r.Memory, Color: r.Color}
}

// UpdateQuantityRequest - PATCH /cart/items/:product_id
// Quantity is validated by the store so a non-positive value reports the
// same error whichever entry point is used.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.NotNil),
	)
}

// CartResponse is the cart as returned by every cart endpoint.
type CartResponse struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func NewCartResponse(lines []Line) *CartResponse {
	if lines == nil {
		lines = []Line{}
	}
	return &CartResponse{
		Items:      lines,
		TotalItems: TotalItems(lines),
		TotalPrice: TotalPrice(lines),
	}
}

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
)

// PlaceFunc turns a frozen cart into an order.
type PlaceFunc func(lines []model.Line, total decimal.Decimal) error

// ServiceInterface is the session cart API used by the HTTP layer and checkout.
type ServiceInterface interface {
	GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) error

	// Snapshot returns the lines and total checkout should freeze into an order.
	Snapshot(ctx context.Context, sessionID string) ([]model.Line, decimal.Decimal, error)

	// Checkout runs place on the frozen cart and clears the cart when it succeeds.
	Checkout(ctx context.Context, sessionID string, place PlaceFunc) error
}

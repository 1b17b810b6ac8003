package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/order/model"
)

// =====================================================
// ORDER REPOSITORY INTERFACE
// =====================================================
type OrderRepository interface {
	// Create writes the order row, its item rows and the initial history row
	// in one transaction.
	Create(ctx context.Context, order *model.Order) error

	// GetByID loads the order with its items. Returns model.ErrOrderNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List returns one page of orders with items, plus the total count.
	// Orders are newest first unless req.OldestFirst is set.
	List(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error)

	// UpdateStatus moves the order from → to only if it is still in from,
	// and records the history row in the same transaction.
	// Returns model.ErrStatusChanged when the order is no longer in from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status) (*model.Order, error)

	ListHistory(ctx context.Context, id uuid.UUID) ([]model.OrderStatusHistory, error)
}

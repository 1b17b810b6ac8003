package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/order/model"
)

// Notifier delivers the new-order summary to an administrator.
type Notifier interface {
	Notify(ctx context.Context, recipient string, summary model.Summary) error
}

// ServiceInterface defines order business operations
type ServiceInterface interface {
	// Shopper
	SubmitOrder(ctx context.Context, form model.CheckoutForm, lines []cartModel.Line, total decimal.Decimal) (*model.Order, error)

	// Admin
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)
	ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderDetailResponse, error)
	ExportOrders(ctx context.Context, status *model.Status) (*excelize.File, error)
}

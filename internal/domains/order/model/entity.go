package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "storefront-backend/internal/domains/cart/model"
)

// =====================================================
// ENTITY: Order
// =====================================================
// Items and Total are frozen at creation. Only Status changes afterwards,
// and only through an admin transition.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	Comment         *string         `json:"comment,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemCount sums item quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// =====================================================
// ENTITY: OrderItem
// =====================================================
// OrderItem is a cart line copied into the order.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	Memory    string          `json:"memory,omitempty"`
	Color     string          `json:"color,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SnapshotItems copies cart lines into order items owned by orderID.
// The result shares no memory with lines.
func SnapshotItems(orderID uuid.UUID, lines []cartModel.Line) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			Memory:    l.Memory,
			Color:     l.Color,
			Subtotal:  l.Subtotal(),
		})
	}
	return items
}

// =====================================================
// ENTITY: OrderStatusHistory
// =====================================================
type OrderStatusHistory struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	FromStatus *Status   `json:"from_status,omitempty"`
	ToStatus   Status    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

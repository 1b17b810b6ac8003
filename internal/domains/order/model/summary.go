package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the notification view of a freshly created order.
type Summary struct {
	OrderID      uuid.UUID       `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	Comment      string          `json:"comment,omitempty"`
	Items        []SummaryItem   `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SummaryItem struct {
	Name     string          `json:"name"`
	Options  string          `json:"options,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func NewSummary(o *Order) Summary {
	s := Summary{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Phone:        o.CustomerPhone,
		Email:        o.CustomerEmail,
		Address:      o.CustomerAddress,
		Items:        make([]SummaryItem, 0, len(o.Items)),
		Total:        o.TotalPrice,
		CreatedAt:    o.CreatedAt,
	}
	if o.Comment != nil {
		s.Comment = *o.Comment
	}
	for _, it := range o.Items {
		s.Items = append(s.Items, SummaryItem{
			Name:     it.Name,
			Options:  joinOptions(it.Memory, it.Color),
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal,
		})
	}
	return s
}

func (s Summary) Subject() string {
	return fmt.Sprintf("New order %s from %s", shortID(s.OrderID), s.CustomerName)
}

// Text renders the plain-text body sent to the administrator.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", s.OrderID)
	fmt.Fprintf(&b, "Placed: %s\n\n", s.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Customer: %s\n", s.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", s.Phone)
	fmt.Fprintf(&b, "Email: %s\n", s.Email)
	fmt.Fprintf(&b, "Address: %s\n", s.Address)
	if s.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", s.Comment)
	}
	b.WriteString("\nItems:\n")
	for _, it := range s.Items {
		name := it.Name
		if it.Options != "" {
			name = fmt.Sprintf("%s (%s)", it.Name, it.Options)
		}
		fmt.Fprintf(&b, "  - %s x %d @ %s = %s\n", name, it.Quantity, it.Price.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", s.Total.StringFixed(2))
	return b.String()
}

func joinOptions(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func shortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

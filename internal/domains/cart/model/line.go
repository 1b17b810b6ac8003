package model

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/product"
)

// Options are the buyer's picks for a product variant.
type Options struct {
	Memory string `json:"memory,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Line is one cart row. Price is the effective unit price at the time the
// product was added and is never recomputed.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	Memory    string          `json:"memory,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// NewLine builds a quantity-1 line from a product, baking in the discount.
func NewLine(p *product.Product, opts Options) Line {
	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.EffectivePrice(),
		Quantity:  1,
		Memory:    opts.Memory,
		Color:     opts.Color,
	}
	if p.ImageURL != nil {
		line.ImageURL = *p.ImageURL
	}
	return line
}

// Subtotal is price × quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CopyLines returns an independent copy of lines.
func CopyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// TotalItems sums quantities.
func TotalItems(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums line subtotals.
func TotalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

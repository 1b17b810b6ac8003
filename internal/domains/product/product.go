package product

import (
	"github.com/shopspring/decimal"
)

// ============================================================
// ENTITY: Product
// ============================================================
// Products are seeded by the catalog tooling and are read-only here.
type Product struct {
	ID              int64           `json:"id" db:"id"`
	Slug            string          `json:"slug" db:"slug"`
	Name            string          `json:"name" db:"name"`
	Description     string          `json:"description" db:"description"`
	Price           decimal.Decimal `json:"price" db:"price"`
	CategoryID      int64           `json:"category_id" db:"category_id"`
	Year            *int            `json:"year,omitempty" db:"year"`
	Color           *string         `json:"color,omitempty" db:"color"`
	InStock         bool            `json:"in_stock" db:"in_stock"`
	DiscountPercent *int            `json:"discount_percent,omitempty" db:"discount_percent"`
	Tags            []string        `json:"tags,omitempty" db:"tags"`
	ImageURL        *string         `json:"image_url,omitempty" db:"image_url"`
}

var hundred = decimal.NewFromInt(100)

// HasDiscount reports whether a positive discount applies.
func (p *Product) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}

// EffectivePrice is the price after discount, rounded half away from zero to a
// whole unit. Without a discount it is Price unchanged.
func (p *Product) EffectivePrice() decimal.Decimal {
	if !p.HasDiscount() {
		return p.Price
	}
	pct := *p.DiscountPercent
	if pct > 100 {
		pct = 100
	}
	discount := p.Price.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
	return p.Price.Sub(discount).Round(0)
}

func (p *Product) YearValue() (int, bool) {
	if p.Year == nil {
		return 0, false
	}
	return *p.Year, true
}

func (p *Product) ColorValue() (string, bool) {
	if p.Color == nil || *p.Color == "" {
		return "", false
	}
	return *p.Color, true
}

// ProductResponse adds the derived effective price for the API.
type ProductResponse struct {
	Product
	EffectivePrice decimal.Decimal `json:"effective_price"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{Product: *p, EffectivePrice: p.EffectivePrice()}
}

func ToResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out
}

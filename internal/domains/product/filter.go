package product

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"storefront-backend/internal/domains/category"
)

// ============================================================
// FILTER
// ============================================================

// PriceRange bounds the raw price inclusively on both ends.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Filter is the typed product query. Zero-valued slices mean "no constraint".
type Filter struct {
	// Category is a category name or category.AllCategories.
	Category string
	// CategoryID takes precedence over Category when set.
	CategoryID  *int64
	Search      string
	PriceRange  *PriceRange
	Years       []int
	Colors      []string
	OnlyInStock bool
	Sort        SortOrder
}

func DefaultFilter() Filter {
	return Filter{
		Category: category.AllCategories,
		Sort:     SortDefault,
	}
}

// Selection resolves the category part of the filter against the tree.
func (f Filter) Selection(tree []*category.Node) category.Selection {
	if f.CategoryID != nil {
		return category.ResolveID(*f.CategoryID, tree)
	}
	if f.Category == "" {
		return category.MatchAll()
	}
	return category.Resolve(f.Category, tree)
}

// Apply runs every filter stage in order: category, search, price, years,
// colors, stock. Input order is kept and the input slice is not modified.
func Apply(products []Product, f Filter, sel category.Selection) []Product {
	fold := cases.Fold()
	needle := fold.String(f.Search)

	years := make(map[int]struct{}, len(f.Years))
	for _, y := range f.Years {
		years[y] = struct{}{}
	}
	colors := make(map[string]struct{}, len(f.Colors))
	for _, c := range f.Colors {
		colors[c] = struct{}{}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !sel.Contains(p.CategoryID) {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.Description), needle) {
			continue
		}
		if f.PriceRange != nil && !f.PriceRange.Contains(p.Price) {
			continue
		}
		if len(years) > 0 {
			y, ok := p.YearValue()
			if !ok {
				continue
			}
			if _, hit := years[y]; !hit {
				continue
			}
		}
		if len(colors) > 0 {
			c, ok := p.ColorValue()
			if !ok {
				continue
			}
			if _, hit := colors[c]; !hit {
				continue
			}
		}
		if f.OnlyInStock && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}

// InCategory keeps products admitted by sel.
func InCategory(products []Product, sel category.Selection) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if sel.Contains(p.CategoryID) {
			out = append(out, p)
		}
	}
	return out
}

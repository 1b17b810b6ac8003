package product

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Facets summarises the values a sidebar can offer for a product set.
type Facets struct {
	Years      []int            `json:"years"`
	Colors     []string         `json:"colors"`
	MinPrice   *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice   *decimal.Decimal `json:"max_price,omitempty"`
	InStock    int              `json:"in_stock"`
	OutOfStock int              `json:"out_of_stock"`
}

// BuildFacets collects distinct years (ascending), distinct colors (sorted),
// the raw price bounds and stock counts.
func BuildFacets(products []Product) Facets {
	facets := Facets{Years: []int{}, Colors: []string{}}

	years := make(map[int]struct{})
	colors := make(map[string]struct{})

	for i := range products {
		p := &products[i]

		if y, ok := p.YearValue(); ok {
			years[y] = struct{}{}
		}
		if c, ok := p.ColorValue(); ok {
			colors[c] = struct{}{}
		}

		if facets.MinPrice == nil || p.Price.LessThan(*facets.MinPrice) {
			price := p.Price
			facets.MinPrice = &price
		}
		if facets.MaxPrice == nil || p.Price.GreaterThan(*facets.MaxPrice) {
			price := p.Price
			facets.MaxPrice = &price
		}

		if p.InStock {
			facets.InStock++
		} else {
			facets.OutOfStock++
		}
	}

	for y := range years {
		facets.Years = append(facets.Years, y)
	}
	sort.Ints(facets.Years)

	for c := range colors {
		facets.Colors = append(facets.Colors, c)
	}
	sort.Strings(facets.Colors)

	return facets
}

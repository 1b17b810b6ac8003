package product

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront-backend/internal/shared/apperr"
)

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNameAsc   SortOrder = "name-asc"
	SortNameDesc  SortOrder = "name-desc"
)

var sortOrders = map[SortOrder]bool{
	SortDefault:   true,
	SortPriceAsc:  true,
	SortPriceDesc: true,
	SortNameAsc:   true,
	SortNameDesc:  true,
}

// ParseSortOrder accepts the query value; empty means SortDefault.
func ParseSortOrder(raw string) (SortOrder, error) {
	if raw == "" {
		return SortDefault, nil
	}
	order := SortOrder(raw)
	if !sortOrders[order] {
		return "", apperr.Validation(ErrCodeInvalidSort,
			fmt.Sprintf("unknown sort order %q", raw),
			map[string]string{"sort": "must be one of default, price-asc, price-desc, name-asc, name-desc"})
	}
	return order, nil
}

// SortProducts returns a sorted copy. Price compares the raw price; names use
// collation for locale. Every order is stable, SortDefault keeps input order.
func SortProducts(products []Product, order SortOrder, locale language.Tag) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortNameAsc, SortNameDesc:
		col := collate.New(locale, collate.IgnoreCase)
		desc := order == SortNameDesc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := col.CompareString(out[i].Name, out[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return out
}

package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"storefront-backend/internal/shared/apperr"
)

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortDefault, order)

	order, err = ParseSortOrder("price-desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, order)

	_, err = ParseSortOrder("popularity")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSortProducts(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "banana", Price: dec("20")},
		{ID: 2, Name: "Apple", Price: dec("10")},
		{ID: 3, Name: "cherry", Price: dec("20")},
		{ID: 4, Name: "Äpfel", Price: dec("5")},
	}

	tests := []struct {
		order SortOrder
		want  []int64
	}{
		{order: SortDefault, want: []int64{1, 2, 3, 4}},
		{order: SortPriceAsc, want: []int64{4, 2, 1, 3}},
		{order: SortPriceDesc, want: []int64{1, 3, 2, 4}},
		{order: SortNameAsc, want: []int64{4, 2, 1, 3}},
		{order: SortNameDesc, want: []int64{3, 1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got := SortProducts(products, tt.order, language.German)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(products), "input must not be reordered")
}

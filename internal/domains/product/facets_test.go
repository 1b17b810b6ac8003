package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFacets(t *testing.T) {
	facets := BuildFacets(testCatalog())

	assert.Equal(t, []int{2023, 2024}, facets.Years)
	assert.Equal(t, []string{"black", "silver"}, facets.Colors)
	require.NotNil(t, facets.MinPrice)
	require.NotNil(t, facets.MaxPrice)
	assert.True(t, dec("49").Equal(*facets.MinPrice))
	assert.True(t, dec("1199").Equal(*facets.MaxPrice))
	assert.Equal(t, 4, facets.InStock)
	assert.Equal(t, 1, facets.OutOfStock)
}

func TestBuildFacets_Empty(t *testing.T) {
	facets := BuildFacets(nil)

	assert.Empty(t, facets.Years)
	assert.Empty(t, facets.Colors)
	assert.Nil(t, facets.MinPrice)
	assert.Nil(t, facets.MaxPrice)
}

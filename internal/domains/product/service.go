package product

import (
	"context"

	"storefront-backend/internal/domains/category"
)

// BrowseResult is one catalog page plus what the sidebar needs.
type BrowseResult struct {
	Page   Page   `json:"page"`
	Facets Facets `json:"facets"`
	// NoResults is set when the filters exclude everything; clients offer a reset.
	NoResults bool `json:"no_results"`
	// Breadcrumb is the path to the selected category, empty for "All".
	Breadcrumb []category.Category `json:"breadcrumb"`
}

type Service interface {
	Browse(ctx context.Context, filter Filter, page int) (*BrowseResult, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}

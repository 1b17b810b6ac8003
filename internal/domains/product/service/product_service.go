package service

import (
	"context"
	"errors"

	"golang.org/x/text/language"

	"storefront-backend/internal/domains/category"
	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

type productService struct {
	repo       product.Repository
	categories category.Service
	locale     language.Tag
	pageSize   int
}

// NewProductService wires the catalog pipeline. locale drives name collation.
func NewProductService(repo product.Repository, categories category.Service, locale language.Tag, pageSize int) product.Service {
	if pageSize < 1 {
		pageSize = product.PageSize
	}
	return &productService{
		repo:       repo,
		categories: categories,
		locale:     locale,
		pageSize:   pageSize,
	}
}

// Browse recomputes the page from the full catalog:
// category scope → remaining filters → sort → paginate.
func (s *productService) Browse(ctx context.Context, filter product.Filter, page int) (*product.BrowseResult, error) {
	// 1. Load catalog + tree
	products, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Failed to load products", err)
		return nil, apperr.Persistence(product.ErrCodeProductLoad, "failed to load products", err)
	}
	tree, err := s.categories.Tree(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Category scope; facets describe this scope so the sidebar
	// keeps offering values the other filters excluded
	sel := filter.Selection(tree)
	scoped := product.InCategory(products, sel)

	// 3. Remaining filters + sort + page
	filtered := product.Apply(scoped, filter, category.MatchAll())
	sorted := product.SortProducts(filtered, filter.Sort, s.locale)

	result := &product.BrowseResult{
		Page:       product.Paginate(sorted, page, s.pageSize),
		Facets:     product.BuildFacets(scoped),
		NoResults:  len(filtered) == 0,
		Breadcrumb: breadcrumb(tree, filter),
	}

	logger.Debug("Catalog page computed")
	return result, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	return s.classify(p, err)
}

func (s *productService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	return s.classify(p, err)
}

func (s *productService) classify(p *product.Product, err error) (*product.Product, error) {
	if err == nil {
		return p, nil
	}
	if errors.Is(err, product.ErrProductNotFound) {
		return nil, apperr.NotFound(product.ErrCodeProductNotFound, "product not found")
	}
	logger.Error("Failed to load product", err)
	return nil, apperr.Persistence(product.ErrCodeProductLoad, "failed to load product", err)
}

func breadcrumb(tree []*category.Node, filter product.Filter) []category.Category {
	var id int64
	switch {
	case filter.CategoryID != nil:
		id = *filter.CategoryID
	case filter.Category != "" && filter.Category != category.AllCategories:
		node := category.Find(tree, func(n *category.Node) bool { return n.Name == filter.Category })
		if node == nil {
			return []category.Category{}
		}
		id = node.ID
	default:
		return []category.Category{}
	}

	path := category.Breadcrumb(tree, id)
	out := make([]category.Category, 0, len(path))
	for _, n := range path {
		out = append(out, n.Category)
	}
	return out
}

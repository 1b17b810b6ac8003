package product

import "context"

type Repository interface {
	// List returns the catalog in its default (storage) order.
	List(ctx context.Context) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}

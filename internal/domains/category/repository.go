package category

import "context"

// Repository reads the category table. Categories are seeded externally.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
}

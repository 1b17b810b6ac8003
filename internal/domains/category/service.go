package category

import "context"

type Service interface {
	// List returns the flat category list in storage order.
	List(ctx context.Context) ([]Category, error)

	// Tree builds the ordered forest from the current category list.
	Tree(ctx context.Context) ([]*Node, error)
}

package category

// TreeResponse wraps the forest for GET /categories/tree.
type TreeResponse struct {
	Roots []*Node `json:"roots"`
	Count int     `json:"count"`
}

func NewTreeResponse(roots []*Node) TreeResponse {
	return TreeResponse{Roots: roots, Count: len(Flatten(roots))}
}

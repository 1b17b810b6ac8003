package category

import "errors"

const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeCategoryLoad     = "CAT002"
)

var ErrCategoryNotFound = errors.New("category not found")

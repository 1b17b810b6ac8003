package product

import "errors"

const (
	ErrCodeProductNotFound = "PRD001"
	ErrCodeInvalidFilter   = "PRD002"
	ErrCodeInvalidSort     = "PRD003"
	ErrCodeProductLoad     = "PRD004"
)

var ErrProductNotFound = errors.New("product not found")

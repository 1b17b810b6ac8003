package model

const (
	ErrCodeInvalidQuantity = "CART001"
	ErrCodeCartLoad        = "CART002"
	ErrCodeCartSave        = "CART003"
	ErrCodeInvalidRequest  = "CART004"
	ErrCodeNoSession       = "CART005"
)

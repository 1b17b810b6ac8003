package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{4,19}$`)

// =====================================================
// CHECKOUT FORM
// =====================================================
type CheckoutForm struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`
	Comment         string `json:"comment"`
}

// Normalize trims every field.
func (f CheckoutForm) Normalize() CheckoutForm {
	return CheckoutForm{
		CustomerName:    strings.TrimSpace(f.CustomerName),
		CustomerPhone:   strings.TrimSpace(f.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(f.CustomerEmail),
		CustomerAddress: strings.TrimSpace(f.CustomerAddress),
		Comment:         strings.TrimSpace(f.Comment),
	}
}

// Validate validates CheckoutForm
func (f CheckoutForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CustomerName, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.CustomerPhone, validation.Required, validation.Match(phonePattern).Error("must be a valid phone number")),
		validation.Field(&f.CustomerEmail, validation.Required, is.EmailFormat),
		validation.Field(&f.CustomerAddress, validation.Required, validation.Length(1, 1000)),
		validation.Field(&f.Comment, validation.Length(0, 2000)),
	)
}

// =====================================================
// ADMIN REQUESTS
// =====================================================
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required),
	)
}

type ListOrdersRequest struct {
	Status      *Status
	Page        int
	Limit       int
	OldestFirst bool // default is newest first
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Normalize clamps paging to sane bounds.
func (r ListOrdersRequest) Normalize() ListOrdersRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultListLimit
	}
	if r.Limit > MaxListLimit {
		r.Limit = MaxListLimit
	}
	return r
}

// =====================================================
// RESPONSES
// =====================================================
type OrderSummaryResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ItemCount     int             `json:"item_count"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (o *Order) ToSummaryResponse() OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalPrice:    o.TotalPrice,
		ItemCount:     o.ItemCount(),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

type OrderDetailResponse struct {
	*Order
	NextStatuses []Status             `json:"next_statuses"`
	History      []OrderStatusHistory `json:"history"`
}

type CheckoutResponse struct {
	OrderID    uuid.UUID       `json:"order_id"`
	Status     Status          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	cartModel "storefront-backend/internal/domains/cart/model"
)

func TestSnapshotItems(t *testing.T) {
	orderID := uuid.New()
	lines := []cartModel.Line{
		{ProductID: 1, Name: "iPhone 16", Price: decimal.NewFromInt(800), Quantity: 2, Memory: "256GB"},
	}

	items := SnapshotItems(orderID, lines)
	lines[0].Quantity = 10

	assert.Len(t, items, 1)
	assert.Equal(t, orderID, items[0].OrderID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, decimal.NewFromInt(1600).Equal(items[0].Subtotal))
}

func TestSummaryText(t *testing.T) {
	comment := "Leave at the door"
	order := &Order{
		ID:              uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
		CustomerName:    "Ada Lovelace",
		CustomerPhone:   "+44 20 7946 0958",
		CustomerEmail:   "ada@example.com",
		CustomerAddress: "London",
		Comment:         &comment,
		Items: []OrderItem{
			{Name: "iPhone 16", Price: decimal.NewFromInt(800), Quantity: 2, Memory: "256GB", Color: "black", Subtotal: decimal.NewFromInt(1600)},
			{Name: "Case", Price: decimal.NewFromInt(25), Quantity: 1, Subtotal: decimal.NewFromInt(25)},
		},
		TotalPrice: decimal.NewFromInt(1625),
		CreatedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	summary := NewSummary(order)
	text := summary.Text()

	assert.Equal(t, "New order 7C9E6679 from Ada Lovelace", summary.Subject())
	assert.Contains(t, text, "Customer: Ada Lovelace")
	assert.Contains(t, text, "Comment: Leave at the door")
	assert.Contains(t, text, "iPhone 16 (256GB, black) x 2 @ 800.00 = 1600.00")
	assert.Contains(t, text, "Case x 1 @ 25.00 = 25.00")
	assert.Contains(t, text, "Total: 1625.00")
}

func TestCheckoutFormValidate(t *testing.T) {
	valid := CheckoutForm{
		CustomerName:    "Ada",
		CustomerPhone:   "+1 (555) 010-0100",
		CustomerEmail:   "ada@example.com",
		CustomerAddress: "London",
	}
	assert.NoError(t, valid.Validate())

	badPhone := valid
	badPhone.CustomerPhone = "call me"
	assert.Error(t, badPhone.Validate())

	normalized := CheckoutForm{CustomerName: "  Ada  ", CustomerEmail: " ada@example.com "}.Normalize()
	assert.Equal(t, "Ada", normalized.CustomerName)
	assert.Equal(t, "ada@example.com", normalized.CustomerEmail)
}

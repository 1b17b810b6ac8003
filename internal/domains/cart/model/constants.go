package model

import "time"

const (
	// CacheKeyCartBySession format: "cart:session:{sessionID}"
	CacheKeyCartBySession = "cart:session:%s"

	// DefaultCartExpirationDays is how long an untouched cart is kept
	DefaultCartExpirationDays = 30

	// CartTTL is refreshed on every write
	CartTTL = DefaultCartExpirationDays * 24 * time.Hour
)

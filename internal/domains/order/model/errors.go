package model

import (
	"errors"
	"fmt"

	"storefront-backend/internal/shared/apperr"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound        = "ORD_NOT_FOUND"
	ErrCodeInvalidOrder         = "ORD_INVALID"
	ErrCodeInvalidStatus        = "ORD_INVALID_STATUS"
	ErrCodeInvalidTransition    = "ORD_INVALID_TRANSITION"
	ErrCodeConflict             = "ORD_CONFLICT"
	ErrCodePersistFailed        = "ORD_PERSIST_FAILED"
	ErrCodeNotificationFailed   = "ORD_NOTIFY_FAILED"
	ErrCodeExportFailed         = "ORD_EXPORT_FAILED"
	ErrCodeCartEmpty            = "ORD_CART_EMPTY"
	ErrCodeInvalidOrderID       = "ORD_INVALID_ID"
	ErrCodeInvalidListingFilter = "ORD_INVALID_FILTER"
)

// =====================================================
// ERROR DEFINITIONS (repository level)
// =====================================================
var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusChanged means the conditional status update matched no row.
	ErrStatusChanged = errors.New("order status changed concurrently")
)

// =====================================================
// CONSTRUCTORS
// =====================================================

func NewInvalidStatusError(raw string) error {
	return apperr.Validation(ErrCodeInvalidStatus,
		fmt.Sprintf("unknown order status %q", raw),
		map[string]string{"status": "must be one of new, processing, completed, cancelled"})
}

func NewInvalidTransitionError(from, to Status) error {
	return apperr.Validation(ErrCodeInvalidTransition,
		fmt.Sprintf("cannot change order status from '%s' to '%s'", from, to),
		map[string]string{"status": fmt.Sprintf("transition %s → %s is not allowed", from, to)})
}

func NewOrderNotFoundError() error {
	return apperr.NotFound(ErrCodeOrderNotFound, "order not found")
}

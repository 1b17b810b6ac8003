package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

// Storage is the key-value port the cart persists through.
type Storage interface {
	// Get returns found = false for a missing key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key is the storage key of a session's cart.
func Key(sessionID string) string {
	return fmt.Sprintf(model.CacheKeyCartBySession, sessionID)
}

// ============================================================
// STORE
// ============================================================

// Store holds one session's cart. Every mutation is written through to
// Storage; a failed write leaves the in-memory cart as it was.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	lines   []model.Line
}

func NewStore(storage Storage, sessionID string) *Store {
	return &Store{
		storage: storage,
		key:     Key(sessionID),
		lines:   []model.Line{},
	}
}

// Load replaces the in-memory cart with the persisted one. A missing or
// unreadable entry starts an empty cart.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return apperr.Persistence(model.ErrCodeCartLoad, "failed to load cart", err)
	}
	if !found || len(raw) == 0 {
		s.lines = []model.Line{}
		return nil
	}

	var lines []model.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		logger.Warn("Discarding unreadable cart", map[string]interface{}{
			"key":   s.key,
			"error": err.Error(),
		})
		s.lines = []model.Line{}
		return nil
	}
	s.lines = sanitize(lines)
	return nil
}

// AddToCart merges by product id: an existing line gains one unit and keeps
// its price and options, otherwise the line is appended with quantity 1.
func (s *Store) AddToCart(ctx context.Context, line model.Line) error {
	return s.mutate(ctx, func(lines []model.Line) ([]model.Line, error) {
		for i := range lines {
			if lines[i].ProductID == line.ProductID {
				lines[i].Quantity++
				return lines, nil
			}
		}
		line.Quantity = 1
		return append(lines, line), nil
	})
}

// RemoveFromCart drops the line; removing an absent product is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID int64) error {
	return s.mutate(ctx, func(lines []model.Line) ([]model.Line, error) {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != productID {
				out = append(out, l)
			}
		}
		return out, nil
	})
}

// UpdateQuantity sets the quantity verbatim. quantity < 1 is rejected and the
// cart is left unchanged; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return apperr.Validation(model.ErrCodeInvalidQuantity, "quantity must be at least 1",
			map[string]string{"quantity": "must be at least 1"})
	}
	return s.mutate(ctx, func(lines []model.Line) ([]model.Line, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = quantity
				break
			}
		}
		return lines, nil
	})
}

func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, func(_ []model.Line) ([]model.Line, error) {
		return []model.Line{}, nil
	})
}

// Lines returns a copy of the cart.
func (s *Store) Lines() []model.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CopyLines(s.lines)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.TotalItems(s.lines)
}

// TotalPrice sums price × quantity; discounts are already in the line price.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.TotalPrice(s.lines)
}

// mutate applies fn to a working copy and commits it only after the write succeeds.
func (s *Store) mutate(ctx context.Context, fn func([]model.Line) ([]model.Line, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(model.CopyLines(s.lines))
	if err != nil {
		return err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return apperr.Persistence(model.ErrCodeCartSave, "failed to encode cart", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return apperr.Persistence(model.ErrCodeCartSave, "failed to save cart", err)
	}

	s.lines = next
	return nil
}

// sanitize drops lines that break the cart invariants: one line per product,
// quantity at least 1.
func sanitize(lines []model.Line) []model.Line {
	seen := make(map[int64]struct{}, len(lines))
	out := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if _, dup := seen[l.ProductID]; dup {
			continue
		}
		seen[l.ProductID] = struct{}{}
		out = append(out, l)
	}
	return out
}

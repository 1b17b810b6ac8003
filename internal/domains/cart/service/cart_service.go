package service

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

// ProductLookup is the slice of the catalog the cart needs.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

// cartService holds a session lock from Load until the write completes, so
// overlapping requests on one session apply in arrival order. The lock is
// per process; carts are not shared across api instances without sticky sessions.
type cartService struct {
	storage  cart.Storage
	products ProductLookup
	locks    *sessionLocks
}

func NewCartService(storage cart.Storage, products ProductLookup) ServiceInterface {
	return &cartService{
		storage:  storage,
		products: products,
		locks:    newSessionLocks(),
	}
}

// open locks the session and loads its cart. The caller must call release
// once it is done with the store, also on error.
func (s *cartService) open(ctx context.Context, sessionID string) (store *cart.Store, release func(), err error) {
	if sessionID == "" {
		return nil, func() {}, apperr.Validation(model.ErrCodeNoSession, "missing cart session",
			map[string]string{"session_id": "is required"})
	}

	release = s.locks.lock(sessionID)
	store = cart.NewStore(s.storage, sessionID)
	if err := store.Load(ctx); err != nil {
		logger.Error("Failed to load cart", err)
		return nil, release, err
	}
	return store, release, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return nil, err
	}
	return model.NewCartResponse(store.Lines()), nil
}

// AddItem looks the product up so the line carries the current effective price.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(model.ErrCodeInvalidRequest, "invalid cart request", err)
	}

	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return nil, err
	}
	if err := store.AddToCart(ctx, model.NewLine(p, req.Options())); err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"product_id":  p.ID,
		"total_items": store.TotalItems(),
	})
	return model.NewCartResponse(store.Lines()), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error) {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return nil, err
	}
	if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return model.NewCartResponse(store.Lines()), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.CartResponse, error) {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return nil, err
	}
	if err := store.RemoveFromCart(ctx, productID); err != nil {
		return nil, err
	}
	return model.NewCartResponse(store.Lines()), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return err
	}
	return store.ClearCart(ctx)
}

func (s *cartService) Snapshot(ctx context.Context, sessionID string) ([]model.Line, decimal.Decimal, error) {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return nil, decimal.Zero, err
	}
	return store.Lines(), store.TotalPrice(), nil
}

// Checkout hands the frozen cart to place and clears it once place succeeds.
// The session stays locked throughout, so no line added meanwhile is cleared
// without being ordered. A failed clear is logged only: the order exists.
func (s *cartService) Checkout(ctx context.Context, sessionID string, place PlaceFunc) error {
	store, release, err := s.open(ctx, sessionID)
	defer release()
	if err != nil {
		return err
	}

	if err := place(store.Lines(), store.TotalPrice()); err != nil {
		return err
	}

	if err := store.ClearCart(ctx); err != nil {
		logger.ErrorWithFields("Failed to clear cart after checkout", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return nil
}

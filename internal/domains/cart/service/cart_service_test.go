package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/apperr"
)

type fakeProducts map[int64]*product.Product

func (f fakeProducts) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, apperr.NotFound(product.ErrCodeProductNotFound, "product not found")
	}
	return p, nil
}

func discount(v int) *int { return &v }

func newService() ServiceInterface {
	image := "https://cdn.example.com/iphone.png"
	products := fakeProducts{
		1: {ID: 1, Name: "iPhone 16", Price: decimal.NewFromInt(1000), DiscountPercent: discount(20), ImageURL: &image},
		2: {ID: 2, Name: "Case", Price: decimal.NewFromInt(25)},
	}
	return NewCartService(cart.NewMemoryStorage(), products)
}

func TestAddItem_BakesEffectivePrice(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	resp, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 1, Memory: "256GB", Color: "black"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.True(t, decimal.NewFromInt(800).Equal(item.Price))
	assert.Equal(t, "256GB", item.Memory)
	assert.Equal(t, "https://cdn.example.com/iphone.png", item.ImageURL)
	assert.True(t, decimal.NewFromInt(800).Equal(resp.TotalPrice))
}

func TestAddItem_Validation(t *testing.T) {
	_, err := newService().AddItem(context.Background(), "s1", model.AddItemRequest{})

	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "product_id")
}

func TestAddItem_UnknownProduct(t *testing.T) {
	_, err := newService().AddItem(context.Background(), "s1", model.AddItemRequest{ProductID: 404})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCartLifecycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 1})
	require.NoError(t, err)

	resp, err := svc.UpdateQuantity(ctx, "s1", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalItems)
	assert.True(t, decimal.NewFromInt(900).Equal(resp.TotalPrice))

	lines, total, err := svc.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.True(t, decimal.NewFromInt(900).Equal(total))

	resp, err = svc.RemoveItem(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalItems)

	require.NoError(t, svc.ClearCart(ctx, "s1"))
	resp, err = svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
}

func TestMissingSession(t *testing.T) {
	_, err := newService().GetCart(context.Background(), "")

	assert.True(t, apperr.IsValidation(err))
}

// slowStorage widens the window between Load and the write.
type slowStorage struct {
	*cart.MemoryStorage
	delay time.Duration
}

func (s slowStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(s.delay)
	return s.MemoryStorage.Get(ctx, key)
}

func newSlowService() ServiceInterface {
	products := fakeProducts{
		2: {ID: 2, Name: "Case", Price: decimal.NewFromInt(25)},
	}
	return NewCartService(slowStorage{MemoryStorage: cart.NewMemoryStorage(), delay: 2 * time.Millisecond}, products)
}

func TestAddItem_ConcurrentRequestsMerge(t *testing.T) {
	svc := newSlowService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	resp, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 20, resp.TotalItems)
}

func TestCheckout(t *testing.T) {
	tests := []struct {
		name      string
		placeErr  error
		wantLines int
	}{
		{name: "success clears cart", placeErr: nil, wantLines: 0},
		{name: "failure keeps cart", placeErr: errors.New("db down"), wantLines: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			ctx := context.Background()
			_, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
			require.NoError(t, err)

			var placed []model.Line
			err = svc.Checkout(ctx, "s1", func(lines []model.Line, total decimal.Decimal) error {
				placed = lines
				assert.True(t, decimal.NewFromInt(25).Equal(total))
				return tt.placeErr
			})

			assert.ErrorIs(t, err, tt.placeErr)
			assert.Len(t, placed, 1)
			resp, err := svc.GetCart(ctx, "s1")
			require.NoError(t, err)
			assert.Len(t, resp.Items, tt.wantLines)
		})
	}
}

func TestCheckout_AddDuringPlaceIsNotLost(t *testing.T) {
	svc := newSlowService()
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
	require.NoError(t, err)

	added := make(chan error, 1)
	var ordered int
	err = svc.Checkout(ctx, "s1", func(lines []model.Line, _ decimal.Decimal) error {
		ordered = model.TotalItems(lines)
		go func() {
			_, err := svc.AddItem(ctx, "s1", model.AddItemRequest{ProductID: 2})
			added <- err
		}()
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, <-added)

	resp, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, ordered)
	assert.Equal(t, 1, resp.TotalItems)
}

func TestCheckout_MissingSession(t *testing.T) {
	called := false
	err := newService().Checkout(context.Background(), "", func([]model.Line, decimal.Decimal) error {
		called = true
		return nil
	})

	assert.True(t, apperr.IsValidation(err))
	assert.False(t, called)
}

func TestSessionLocks_ReleaseDropsEntry(t *testing.T) {
	locks := newSessionLocks()

	unlockA := locks.lock("a")
	unlockB := locks.lock("b")
	assert.Equal(t, 2, locks.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}

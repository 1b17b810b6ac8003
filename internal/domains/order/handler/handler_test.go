package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/cart"
	cartModel "storefront-backend/internal/domains/cart/model"
	cartService "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/internal/shared/middleware"
)

const (
	adminToken    = "secret-token"
	sessionCookie = "session_id=0d9e4d84-2f0e-4e0c-9a0b-8c1f3b6a2d55"
)

type fakeOrders struct {
	submitErr error
	updateErr error
	submitted []cartModel.Line
}

func (f *fakeOrders) SubmitOrder(_ context.Context, form model.CheckoutForm, lines []cartModel.Line, total decimal.Decimal) (*model.Order, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = lines
	return &model.Order{ID: uuid.New(), Status: model.OrderStatusNew, TotalPrice: total, CreatedAt: time.Now()}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.Order{ID: id, Status: model.Status(status)}, nil
}

func (f *fakeOrders) ListOrders(context.Context, model.ListOrdersRequest) ([]model.Order, int, error) {
	return []model.Order{{ID: uuid.New(), Status: model.OrderStatusNew}}, 1, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id uuid.UUID) (*model.OrderDetailResponse, error) {
	return nil, apperr.NotFound(model.ErrCodeOrderNotFound, "order not found")
}

func (f *fakeOrders) ExportOrders(context.Context, *model.Status) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

type catalog struct{}

func (catalog) GetByID(_ context.Context, id int64) (*product.Product, error) {
	return &product.Product{ID: id, Name: "Item", Price: decimal.NewFromInt(100)}, nil
}

func setup(orders *fakeOrders) (*gin.Engine, cartService.ServiceInterface) {
	gin.SetMode(gin.TestMode)
	carts := cartService.NewCartService(cart.NewMemoryStorage(), catalog{})

	r := gin.New()
	r.Use(middleware.SessionMiddleware(middleware.DefaultSessionMiddlewareConfig()))
	v1 := r.Group("/api/v1")
	admin := v1.Group("/admin", middleware.AdminMiddleware(adminToken))
	NewOrderHandler(orders, carts).RegisterRoutes(v1, admin)
	return r, carts
}

func request(r *gin.Engine, method, path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", sessionCookie)
	if admin {
		req.Header.Set(middleware.AdminTokenHeader, adminToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const checkoutBody = `{"customer_name":"Ada","customer_phone":"+44 20 7946 0958","customer_email":"ada@example.com","customer_address":"London"}`

func sessionID() string {
	return strings.TrimPrefix(sessionCookie, "session_id=")
}

func TestCheckout_ClearsCartOnSuccess(t *testing.T) {
	orders := &fakeOrders{}
	r, carts := setup(orders)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, sessionID(), cartModel.AddItemRequest{ProductID: 1})
	require.NoError(t, err)

	w := request(r, http.MethodPost, "/api/v1/checkout", checkoutBody, false)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, orders.submitted, 1)
	cartResp, err := carts.GetCart(ctx, sessionID())
	require.NoError(t, err)
	assert.Empty(t, cartResp.Items)
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation",
			err:        apperr.Validation(model.ErrCodeInvalidOrder, "invalid order", map[string]string{"customer_email": "cannot be blank"}),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "persistence",
			err:        apperr.Persistence(model.ErrCodePersistFailed, "failed to save order", errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, carts := setup(&fakeOrders{submitErr: tt.err})
			ctx := context.Background()
			_, err := carts.AddItem(ctx, sessionID(), cartModel.AddItemRequest{ProductID: 1})
			require.NoError(t, err)

			w := request(r, http.MethodPost, "/api/v1/checkout", checkoutBody, false)

			assert.Equal(t, tt.wantStatus, w.Code)
			cartResp, err := carts.GetCart(ctx, sessionID())
			require.NoError(t, err)
			assert.Len(t, cartResp.Items, 1)
		})
	}
}

func TestAdmin_RequiresToken(t *testing.T) {
	r, _ := setup(&fakeOrders{})

	w := request(r, http.MethodGet, "/api/v1/admin/orders", "", false)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdmin_ListOrders(t *testing.T) {
	r, _ := setup(&fakeOrders{})

	w := request(r, http.MethodGet, "/api/v1/admin/orders?status=new", "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/v1/admin/orders?status=lost", "", true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdmin_UpdateStatusErrorMapping(t *testing.T) {
	id := uuid.New().String()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", err: nil, wantStatus: http.StatusOK},
		{name: "illegal transition", err: model.NewInvalidTransitionError(model.OrderStatusCompleted, model.OrderStatusNew), wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown order", err: model.NewOrderNotFoundError(), wantStatus: http.StatusNotFound},
		{name: "conflict", err: apperr.Persistence(model.ErrCodeConflict, "changed", model.ErrStatusChanged), wantStatus: http.StatusConflict},
		{name: "store failure", err: apperr.Persistence(model.ErrCodePersistFailed, "failed", errors.New("x")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setup(&fakeOrders{updateErr: tt.err})

			w := request(r, http.MethodPatch, "/api/v1/admin/orders/"+id+"/status", `{"status":"processing"}`, true)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAdmin_BadOrderID(t *testing.T) {
	r, _ := setup(&fakeOrders{})

	w := request(r, http.MethodGet, "/api/v1/admin/orders/not-a-uuid", "", true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdmin_Export(t *testing.T) {
	r, _ := setup(&fakeOrders{})

	w := request(r, http.MethodGet, "/api/v1/admin/orders/export", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

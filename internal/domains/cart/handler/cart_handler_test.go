package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/middleware"
)

type catalog struct{}

func (catalog) GetByID(_ context.Context, id int64) (*product.Product, error) {
	return &product.Product{ID: id, Name: "Item", Price: decimal.NewFromInt(100)}, nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionMiddleware(middleware.DefaultSessionMiddlewareConfig()))

	h := NewHandler(service.NewCartService(cart.NewMemoryStorage(), catalog{}))
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddItem)
	r.PATCH("/cart/items/:product_id", h.UpdateItemQuantity)
	r.DELETE("/cart/items/:product_id", h.RemoveItem)
	r.DELETE("/cart", h.ClearCart)
	return r
}

const sessionCookie = "session_id=5f0c3c1e-4b7a-4e43-9a57-1f6d8f6b7c11"

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", sessionCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Data struct {
		Items []struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		} `json:"items"`
		TotalItems int    `json:"total_items"`
		TotalPrice string `json:"total_price"`
	} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartHandler_Flow(t *testing.T) {
	r := setupRouter()

	w := do(r, http.MethodPost, "/cart/items", `{"product_id":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, "/cart/items/5", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 3, body.Data.TotalItems)
	assert.Equal(t, "300", body.Data.TotalPrice)

	w = do(r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data.Items, 1)

	w = do(r, http.MethodDelete, "/cart/items/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Data.Items)

	w = do(r, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartHandler_RejectsNonPositiveQuantity(t *testing.T) {
	r := setupRouter()
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/cart/items", `{"product_id":5}`).Code)

	w := do(r, http.MethodPatch, "/cart/items/5", `{"quantity":0}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "quantity")
}

func TestCartHandler_BadProductID(t *testing.T) {
	w := do(setupRouter(), http.MethodDelete, "/cart/items/abc", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCartHandler_IssuesSessionCookie(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=")
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartModel "storefront-backend/internal/domains/cart/model"
	cartService "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	orderService service.ServiceInterface
	cartService  cartService.ServiceInterface
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.ServiceInterface, cartService cartService.ServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		cartService:  cartService,
	}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterRoutes registers the shopper checkout route and the admin routes.
// admin must already carry the admin guard.
func (h *OrderHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/checkout", h.Checkout) // POST /api/v1/checkout

	adminRoutes := admin.Group("/orders")
	{
		adminRoutes.GET("", h.ListOrders)                // GET /api/v1/admin/orders?status=new&page=1&limit=20
		adminRoutes.GET("/export", h.ExportOrders)       // GET /api/v1/admin/orders/export?status=new
		adminRoutes.GET("/:id", h.GetOrder)              // GET /api/v1/admin/orders/:id
		adminRoutes.PATCH("/:id/status", h.UpdateStatus) // PATCH /api/v1/admin/orders/:id/status
	}
}

// =====================================================
// CHECKOUT
// =====================================================

// Checkout godoc
// @Summary Place an order from the session cart
// @Tags Orders
// @Accept json
// @Produce json
// @Router /api/v1/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	var form model.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidOrder, "invalid request body", nil))
		return
	}

	// 1. Freeze the cart, submit, then clear it under the session lock
	var order *model.Order
	err := h.cartService.Checkout(ctx, sessionID, func(lines []cartModel.Line, total decimal.Decimal) error {
		var submitErr error
		order, submitErr = h.orderService.SubmitOrder(ctx, form, lines, total)
		return submitErr
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order created successfully", model.CheckoutResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	})
}

// =====================================================
// ADMIN
// =====================================================

// ListOrders godoc
// @Summary List orders (admin)
// @Tags Admin Orders
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	req := model.ListOrdersRequest{
		Status: status,
		Page:   utils.ParsePositiveInt(c.Query("page"), 1),
		Limit:  utils.ParsePositiveInt(c.Query("limit"), model.DefaultListLimit),
	}.Normalize()

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]model.OrderSummaryResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orders[i].ToSummaryResponse())
	}

	totalPages := (total + req.Limit - 1) / req.Limit
	response.SuccessWithMeta(c, http.StatusOK, "Orders retrieved successfully", items, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetOrder godoc
// @Summary Get order detail with status history (admin)
// @Tags Admin Orders
// @Router /api/v1/admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "OK", detail)
}

// UpdateStatus godoc
// @Summary Change order status (admin)
// @Tags Admin Orders
// @Router /api/v1/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidStatus, "invalid request body", nil))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, apperr.FromValidation(model.ErrCodeInvalidStatus, "invalid status request", err))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Order status updated", order)
}

// ExportOrders godoc
// @Summary Download orders as an xlsx workbook (admin)
// @Tags Admin Orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/v1/admin/orders/export [get]
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	f, err := h.orderService.ExportOrders(c.Request.Context(), status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write order export", err)
	}
}

// =====================================================
// HELPERS
// =====================================================

func orderIDParam(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidOrderID, "invalid order id",
			map[string]string{"id": "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return orderID, true
}

func statusQuery(c *gin.Context) (*model.Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return &status, true
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

// Handler handles HTTP requests for the session cart
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ===================================
// GET /cart
// ===================================
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Cart retrieved successfully", cart)
}

// ===================================
// POST /cart/items
// ===================================
func (h *Handler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidRequest, "invalid request body", nil))
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item added to cart", cart)
}

// ===================================
// PATCH /cart/items/:product_id
// ===================================
func (h *Handler) UpdateItemQuantity(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidRequest, "invalid request body", nil))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, apperr.FromValidation(model.ErrCodeInvalidRequest, "invalid cart request", err))
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), productID, *req.Quantity)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Cart item updated", cart)
}

// ===================================
// DELETE /cart/items/:product_id
// ===================================
func (h *Handler) RemoveItem(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), productID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Cart item removed", cart)
}

// ===================================
// DELETE /cart
// ===================================
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Cart cleared", model.NewCartResponse(nil))
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil || id < 1 {
		response.FromError(c, apperr.Validation(model.ErrCodeInvalidRequest, "invalid product id",
			map[string]string{"product_id": "must be a positive integer"}))
		return 0, false
	}
	return id, true
}

package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/product"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/internal/shared/response"
	"storefront-backend/internal/shared/utils"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListProducts godoc
// GET /api/v1/products?category=&category_id=&q=&min_price=&max_price=&year=&color=&in_stock=&sort=&page=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	page := utils.ParsePositiveInt(c.Query("page"), 1)

	result, err := h.service.Browse(c.Request.Context(), filter, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	body := gin.H{
		"items":      product.ToResponses(result.Page.Items),
		"facets":     result.Facets,
		"no_results": result.NoResults,
		"breadcrumb": result.Breadcrumb,
	}
	response.SuccessWithMeta(c, http.StatusOK, "Products retrieved successfully", body, &response.Meta{
		Page:       result.Page.Page,
		Limit:      result.Page.PageSize,
		Total:      result.Page.Total,
		TotalPages: result.Page.TotalPages,
	})
}

// GetProduct godoc
// GET /api/v1/products/:slug
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Product retrieved successfully", p.ToResponse())
}

// ============================================================
// QUERY PARSING
// ============================================================

func parseFilter(c *gin.Context) (product.Filter, error) {
	filter := product.DefaultFilter()
	fields := map[string]string{}

	if name := strings.TrimSpace(c.Query("category")); name != "" {
		filter.Category = name
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["category_id"] = "must be an integer"
		} else {
			filter.CategoryID = &id
		}
	}

	filter.Search = c.Query("q")

	minRaw, maxRaw := c.Query("min_price"), c.Query("max_price")
	if minRaw != "" || maxRaw != "" {
		priceRange := &product.PriceRange{
			Min: decimal.Zero,
			Max: decimal.NewFromInt(math.MaxInt64),
		}
		if minRaw != "" {
			v, err := decimal.NewFromString(minRaw)
			if err != nil {
				fields["min_price"] = "must be a number"
			}
			priceRange.Min = v
		}
		if maxRaw != "" {
			v, err := decimal.NewFromString(maxRaw)
			if err != nil {
				fields["max_price"] = "must be a number"
			}
			priceRange.Max = v
		}
		filter.PriceRange = priceRange
	}

	years, err := utils.ParseInts(utils.SplitValues(c.QueryArray("year")))
	if err != nil {
		fields["year"] = "must be integers"
	}
	filter.Years = years
	filter.Colors = utils.SplitValues(c.QueryArray("color"))

	if raw := c.Query("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			fields["in_stock"] = "must be a boolean"
		}
		filter.OnlyInStock = inStock
	}

	sortOrder, err := product.ParseSortOrder(c.Query("sort"))
	if err != nil {
		fields["sort"] = "must be one of default, price-asc, price-desc, name-asc, name-desc"
	}
	filter.Sort = sortOrder

	if len(fields) > 0 {
		return filter, apperr.Validation(product.ErrCodeInvalidFilter, "invalid product filter", fields)
	}
	return filter, nil
}

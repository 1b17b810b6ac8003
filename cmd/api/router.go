package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
	)

	sessionConfig := middleware.DefaultSessionMiddlewareConfig()
	if c.Config.IsDevelopment() {
		sessionConfig.CookieSecure = false
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCategoryRoutes(v1, c)
		setupProductRoutes(v1, c)

		// Cart and checkout share the session cookie
		shop := v1.Group("")
		shop.Use(middleware.SessionMiddleware(sessionConfig))
		setupCartRoutes(shop, c)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminMiddleware(c.Config.Admin.Token))

		c.OrderHandler.RegisterRoutes(shop, admin)
	}

	return router
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.ListCategories)
		categories.GET("/tree", c.CategoryHandler.GetTree)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/:slug", c.ProductHandler.GetProduct)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(shop *gin.RouterGroup, c *container.Container) {
	cart := shop.Group("/cart")
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PATCH("/items/:product_id", c.CartHandler.UpdateItemQuantity)
		cart.DELETE("/items/:product_id", c.CartHandler.RemoveItem)
	}
}

// healthCheckHandler pings Postgres and Redis.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		services := gin.H{"database": "up", "redis": "up"}
		status := http.StatusOK

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			services["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			services["redis"] = "down"
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"version":  c.Config.App.Version,
			"services": services,
		})
	}
}

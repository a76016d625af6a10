package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Storefront surface: listings and product detail read through the
	// session tier, the landing page and category browse through the
	// trusted in-memory tier.
	api := router.Group("/api")
	api.Use(sessionMiddleware())
	{
		api.GET("/home", homeHandler(deps.Catalog))
		api.GET("/products", listProductsHandler(deps.Session))
		api.GET("/products/:id", getProductHandler(deps.Session))
		api.GET("/categories", listCategoriesHandler(deps.Catalog))
		api.GET("/categories/:id/products", categoryProductsHandler(deps.Catalog))

		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Session))
		api.PATCH("/cart/items/:id", updateCartItemHandler(deps.Cart))
		api.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
		api.DELETE("/cart", clearCartHandler(deps.Cart))

		api.POST("/checkout", checkoutHandler(deps.Orders))
		api.GET("/orders/last", lastOrderHandler(deps.Orders))
	}

	// Back-office surface on the trusted reader.
	admin := router.Group("/admin")
	{
		admin.GET("/products", adminProductsHandler(deps.Catalog))
		admin.GET("/products/:id", adminProductHandler(deps.Catalog))
		admin.POST("/cache/invalidate", invalidateHandler(deps.Catalog, logger))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

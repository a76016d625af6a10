package httpserver

import (
	"net/http"

	"aswaq-storefront/internal/service/cart"
	"aswaq-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items      cart.Items `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
}

func toCartResponse(items cart.Items) cartResponse {
	if items == nil {
		items = cart.Items{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: items.TotalItems(),
		TotalPrice: items.TotalPrice(),
	}
}

func getCartHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := mgr.Load(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(mgr *cart.Manager, reader *catalog.SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		p, err := reader.ProductByID(c.Request.Context(), req.ProductID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		items := mgr.Add(c.Request.Context(), sessionID(c), *p, req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

type updateItemRequest struct {
	// Pointer so an explicit zero (meaning: remove the line) survives
	// binding.
	Quantity *int `json:"quantity" binding:"required"`
}

func updateCartItemHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		items := mgr.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("id"), *req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func removeCartItemHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := mgr.Remove(c.Request.Context(), sessionID(c), c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func clearCartHandler(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr.Clear(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, toCartResponse(nil))
	}
}

package httpserver

import (
	"errors"
	"net/http"

	"aswaq-storefront/internal/service/order"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CustomerName string `json:"customerName"`
}

func checkoutHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		ord, err := svc.Submit(c.Request.Context(), sessionID(c), req.CustomerName)
		switch {
		case errors.Is(err, order.ErrEmptyName):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "please enter your name"})
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
		case err != nil:
			// Details are logged by the service; the session only ever
			// sees one generic retryable message.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit order, please try again"})
		default:
			c.JSON(http.StatusCreated, gin.H{"order": ord})
		}
	}
}

func lastOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		last, err := svc.Last(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order status"})
			return
		}
		if last == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no orders yet"})
			return
		}
		c.JSON(http.StatusOK, last)
	}
}

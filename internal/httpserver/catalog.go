package httpserver

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"aswaq-storefront/internal/domain"
	"aswaq-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func homeHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := svc.HomeProducts(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func listProductsHandler(reader *catalog.SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		result, err := reader.Products(c.Request.Context(), page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			result.Products = filterByName(result.Products, search)
		}
		c.JSON(http.StatusOK, result)
	}
}

func getProductHandler(reader *catalog.SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := reader.ProductByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func listCategoriesHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func categoryProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		result, err := svc.CategoryProducts(c.Request.Context(), c.Param("id"), page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func adminProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		result, err := svc.Products(c.Request.Context(), page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func adminProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.ProductByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

type invalidateRequest struct {
	Scope string `json:"scope" binding:"required"`
}

// invalidateHandler drops cached listings after an out-of-band catalog
// write so the next read goes back to the database.
func invalidateHandler(svc *catalog.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invalidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scope required"})
			return
		}
		var removed int
		switch req.Scope {
		case "products":
			removed = svc.InvalidateProducts()
		case "categories":
			removed = svc.InvalidateCategories()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scope"})
			return
		}
		logger.Printf("cache invalidated scope=%s removed=%d", req.Scope, removed)
		c.JSON(http.StatusOK, gin.H{"scope": req.Scope, "removed": removed})
	}
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))
	return page, limit
}

// filterByName is the case-insensitive substring search applied over
// the fetched page; the cache keys stay search-agnostic.
func filterByName(products []domain.Product, search string) []domain.Product {
	needle := strings.ToLower(search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

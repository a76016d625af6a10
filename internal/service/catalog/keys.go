package catalog

import (
	"fmt"
	"strings"
)

// Cache keys are shared by both cache tiers so invalidation patterns
// match everywhere.

const categoriesKey = "categories:all"

func productsKey(page, limit int) string {
	return fmt.Sprintf("products:%d:%d", page, limit)
}

func productKey(id string) string {
	return "product:" + id
}

func categoryProductsKey(categoryID string, page, limit int) string {
	return fmt.Sprintf("category:%s:products:%d:%d", categoryID, page, limit)
}

func isProductKey(key string) bool {
	return strings.HasPrefix(key, "products:") ||
		strings.HasPrefix(key, "product:") ||
		strings.Contains(key, ":products:")
}

func isCategoryKey(key string) bool {
	return strings.HasPrefix(key, "categories:") ||
		strings.HasPrefix(key, "category:")
}

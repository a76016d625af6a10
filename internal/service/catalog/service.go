// Package catalog is the read-through data access layer over the
// product and category repositories. Two readers share the same cache
// keys: Service holds the process-wide in-memory tier used by trusted
// server-side reads, SessionReader holds the durable per-session tier
// used by the storefront client paths.
package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"aswaq-storefront/internal/cache"
	"aswaq-storefront/internal/domain"
	categoryrepo "aswaq-storefront/internal/repository/category"
	productrepo "aswaq-storefront/internal/repository/product"
)

// DefaultLimit is the page size when the caller does not pick one.
const DefaultLimit = 12

// DefaultHomeTimeout bounds the home-page listing fetch; past it the
// page renders empty instead of blocking.
const DefaultHomeTimeout = 8 * time.Second

type Service struct {
	products    productrepo.Repository
	categories  categoryrepo.Repository
	mem         *cache.Cache
	homeTimeout time.Duration
	logger      *log.Logger
}

func NewService(products productrepo.Repository, categories categoryrepo.Repository, mem *cache.Cache, homeTimeout time.Duration, logger *log.Logger) *Service {
	if homeTimeout <= 0 {
		homeTimeout = DefaultHomeTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		products:    products,
		categories:  categories,
		mem:         mem,
		homeTimeout: homeTimeout,
		logger:      logger,
	}
}

// Products returns one page of the product listing, newest first.
func (s *Service) Products(ctx context.Context, page, limit int) (domain.ProductPage, error) {
	page, limit = normalizePage(page, limit)
	key := productsKey(page, limit)
	if v, ok := s.mem.Get(key); ok {
		return v.(domain.ProductPage), nil
	}
	result, err := s.products.List(ctx, page, limit)
	if err != nil {
		return domain.ProductPage{}, err
	}
	s.mem.Set(key, result)
	return result, nil
}

// CategoryProducts returns one page of a category's products.
func (s *Service) CategoryProducts(ctx context.Context, categoryID string, page, limit int) (domain.ProductPage, error) {
	page, limit = normalizePage(page, limit)
	key := categoryProductsKey(categoryID, page, limit)
	if v, ok := s.mem.Get(key); ok {
		return v.(domain.ProductPage), nil
	}
	result, err := s.products.ListByCategory(ctx, categoryID, page, limit)
	if err != nil {
		return domain.ProductPage{}, err
	}
	s.mem.Set(key, result)
	return result, nil
}

// ProductByID returns nil with no error when the product does not
// exist; absence is a normal outcome, not a failure.
func (s *Service) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)
	if v, ok := s.mem.Get(key); ok {
		p := v.(domain.Product)
		return &p, nil
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.mem.Set(key, *p)
	return p, nil
}

// Categories returns every category ordered by name.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	if v, ok := s.mem.Get(categoriesKey); ok {
		return v.([]domain.Category), nil
	}
	result, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Category{}
	}
	s.mem.Set(categoriesKey, result)
	return result, nil
}

// HomeProducts returns the full newest-first listing for the landing
// page, bounded by the home timeout. Any failure, the timeout
// included, degrades to an empty listing so the page always renders.
func (s *Service) HomeProducts(ctx context.Context) []domain.Product {
	ctx, cancel := context.WithTimeout(ctx, s.homeTimeout)
	defer cancel()

	products, err := s.products.ListNewest(ctx)
	if err != nil {
		s.logger.Printf("catalog: home listing degraded to empty: %v", err)
		return []domain.Product{}
	}
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// InvalidateProducts drops every cached product listing and detail so
// the next read goes back to the store.
func (s *Service) InvalidateProducts() int {
	return s.mem.DeleteFunc(isProductKey)
}

// InvalidateCategories drops every cached category listing.
func (s *Service) InvalidateCategories() int {
	return s.mem.DeleteFunc(isCategoryKey)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return page, limit
}

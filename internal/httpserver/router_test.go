package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aswaq-storefront/internal/cache"
	"aswaq-storefront/internal/clientstore"
	"aswaq-storefront/internal/domain"
	orderrepo "aswaq-storefront/internal/repository/order"
	"aswaq-storefront/internal/service/cart"
	"aswaq-storefront/internal/service/catalog"
	"aswaq-storefront/internal/service/order"
	"github.com/gin-gonic/gin"
)

type stubProductRepo struct {
	page     domain.ProductPage
	products map[string]domain.Product
}

func (s *stubProductRepo) List(context.Context, int, int) (domain.ProductPage, error) {
	return s.page, nil
}

func (s *stubProductRepo) ListByCategory(context.Context, string, int, int) (domain.ProductPage, error) {
	return s.page, nil
}

func (s *stubProductRepo) ListNewest(context.Context) ([]domain.Product, error) {
	return s.page.Products, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (s *stubCategoryRepo) ListAll(context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryRepo) GetByID(context.Context, string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}

type stubOrderRepo struct {
	createErr error
	created   []orderrepo.CreateOrderInput
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	return &domain.Order{ID: "ord-1", CustomerName: in.CustomerName, TotalAmount: in.TotalAmount, Status: in.Status}, nil
}

func (s *stubOrderRepo) GetStatus(context.Context, string) (string, error) {
	if len(s.created) == 0 {
		return "", domain.ErrNotFound
	}
	return domain.OrderStatusPending, nil
}

type memStore struct {
	data map[string][]byte
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, ok := s.data[key]
	if !ok {
		return nil, clientstore.ErrNotFound
	}
	return raw, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func testRouter(t *testing.T) (*gin.Engine, *stubOrderRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := &stubProductRepo{
		page: domain.NewProductPage([]domain.Product{
			{ID: "p1", Name: "Carpet", Price: 1000},
			{ID: "p2", Name: "Cushion", Price: 500},
		}, 2, 1, 12),
		products: map[string]domain.Product{
			"p1": {ID: "p1", Name: "Carpet", Price: 1000},
			"p2": {ID: "p2", Name: "Cushion", Price: 500},
		},
	}
	categories := &stubCategoryRepo{categories: []domain.Category{{ID: "c1", Name: "Rugs"}}}
	orders := &stubOrderRepo{}

	store := &memStore{data: map[string][]byte{}}
	logger := log.New(io.Discard, "", 0)

	catalogSvc := catalog.NewService(products, categories, cache.New(100, time.Minute), time.Second, logger)
	sessionReader := catalog.NewSessionReader(products, clientstore.NewCache(store, clientstore.DefaultFreshness, logger), catalog.DefaultDedupWindow, logger)
	cartMgr := cart.NewManager(store, logger)
	orderSvc := order.New(orders, cartMgr, store, logger)

	router := buildRouter(logger, nil, Deps{
		Catalog: catalogSvc,
		Session: sessionReader,
		Cart:    cartMgr,
		Orders:  orderSvc,
	}, nil)
	return router, orders
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "test-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestSessionCookieAssigned(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Header().Values("Set-Cookie")
	found := false
	for _, ck := range cookies {
		if strings.Contains(ck, sessionCookie+"=") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a session cookie to be set, got %v", cookies)
	}
}

func TestCartFlow(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add p1: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/cart/items", `{"productId":"p2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add p2: expected 200, got %d", rec.Code)
	}

	resp := decodeCart(t, rec)
	if resp.TotalItems != 3 || resp.TotalPrice != 2500 {
		t.Fatalf("expected totals 3/2500, got %d/%d", resp.TotalItems, resp.TotalPrice)
	}

	// Quantity zero removes the line.
	rec = doJSON(t, router, http.MethodPatch, "/api/cart/items/p1", `{"quantity":0}`)
	resp = decodeCart(t, rec)
	if resp.TotalItems != 1 || resp.TotalPrice != 500 {
		t.Fatalf("expected totals 1/500 after removing p1, got %d/%d", resp.TotalItems, resp.TotalPrice)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/cart", "")
	resp = decodeCart(t, rec)
	if resp.TotalItems != 0 || len(resp.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", resp)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"productId":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddMissingProductID(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutValidation(t *testing.T) {
	router, orders := testRouter(t)

	// Empty cart first.
	rec := doJSON(t, router, http.MethodPost, "/api/checkout", `{"customerName":"Sajjad"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty cart: expected 422, got %d", rec.Code)
	}

	doJSON(t, router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)

	rec = doJSON(t, router, http.MethodPost, "/api/checkout", `{"customerName":"   "}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank name: expected 422, got %d", rec.Code)
	}
	if len(orders.created) != 0 {
		t.Fatalf("no order may be written before validation passes")
	}
}

func TestCheckoutSuccess(t *testing.T) {
	router, orders := testRouter(t)

	doJSON(t, router, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":2}`)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", `{"customerName":"Sajjad"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(orders.created) != 1 || orders.created[0].TotalAmount != 2000 {
		t.Fatalf("unexpected order input: %+v", orders.created)
	}

	// The cart is empty afterwards and the order is trackable.
	resp := decodeCart(t, doJSON(t, router, http.MethodGet, "/api/cart", ""))
	if resp.TotalItems != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", resp)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/orders/last", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from last order, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.OrderStatusPending) {
		t.Fatalf("expected pending status, got %s", rec.Body.String())
	}
}

func TestLastOrderBeforeAnyCheckout(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/last", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductsSearchFilter(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products?search=CAR", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page domain.ProductPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Products) != 1 || page.Products[0].Name != "Carpet" {
		t.Fatalf("expected only Carpet to match, got %+v", page.Products)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInvalidateCacheScope(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/admin/cache/invalidate", `{"scope":"products"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/admin/cache/invalidate", `{"scope":"everything"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown scope, got %d", rec.Code)
	}
}

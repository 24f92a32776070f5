package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/core/service"
)

// In-memory repositories backing the full service stack.

type memCartRepo struct {
	carts map[string]*domain.Cart
}

func (m *memCartRepo) CreateCart(ctx context.Context, cart *domain.Cart) error {
	m.carts[cart.ID] = cart
	return nil
}

func (m *memCartRepo) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return m.carts[cartID], nil
}

func (m *memCartRepo) SaveCart(ctx context.Context, cart *domain.Cart) error {
	m.carts[cart.ID] = cart
	return nil
}

type memCatalogRepo struct {
	products map[string]domain.Product
}

func (m *memCatalogRepo) CreateBrand(ctx context.Context, b domain.Brand) error       { return nil }
func (m *memCatalogRepo) CreateSubCategory(ctx context.Context, sc domain.SubCategory) error {
	return nil
}
func (m *memCatalogRepo) CreateCategory(ctx context.Context, c domain.Category) error { return nil }

func (m *memCatalogRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memCatalogRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memCatalogRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memCatalogRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memCatalogRepo) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.Available {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memCatalogRepo) ListProductsByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	return nil, nil
}

func (m *memCatalogRepo) ListBrands(ctx context.Context) ([]domain.Brand, error) { return nil, nil }
func (m *memCatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

type memOrderRepo struct {
	orders map[string]domain.Order
}

func (m *memOrderRepo) CreateOrder(ctx context.Context, order domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *memOrderRepo) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if o, ok := m.orders[orderID]; ok {
		return &o, nil
	}
	return nil, nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	o := m.orders[orderID]
	o.Status = status
	m.orders[orderID] = o
	return nil
}

func newTestServer(t *testing.T, products ...domain.Product) *httptest.Server {
	t.Helper()

	catalogRepo := &memCatalogRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		catalogRepo.products[p.ID] = p
	}
	cartRepo := &memCartRepo{carts: make(map[string]*domain.Cart)}
	orderRepo := &memOrderRepo{orders: make(map[string]domain.Order)}

	catalog := service.NewCatalogService(catalogRepo, nil)
	carts := service.NewCartService(cartRepo, catalog)
	checkout := service.NewCheckoutService(cartRepo, orderRepo)

	h := NewHTTPHandler(carts, checkout, catalog, zap.NewNop())
	mux := http.NewServeMux()
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func galaxyProduct() domain.Product {
	return domain.Product{
		ID:        "p-1",
		Title:     "Galaxy S24",
		Slug:      "galaxy-s24",
		Price:     decimal.RequireFromString("5.00"),
		Available: true,
	}
}

func TestHTTP_CartFlow(t *testing.T) {
	srv := newTestServer(t, galaxyProduct())

	// create cart
	resp := postJSON(t, srv.URL+"/api/cart", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create cart: status %d", resp.StatusCode)
	}
	var cart cartResponse
	decodeBody(t, resp, &cart)

	// add by slug
	resp = postJSON(t, srv.URL+"/api/cart/add", cartMutationRequest{
		CartID: cart.ID, ProductSlug: "galaxy-s24",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add to cart: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cart)
	if len(cart.Items) != 1 || cart.CartTotal != "5.00" {
		t.Fatalf("after add: items=%d total=%s", len(cart.Items), cart.CartTotal)
	}

	// change quantity
	resp = postJSON(t, srv.URL+"/api/cart/quantity", changeQuantityRequest{
		CartID: cart.ID, ItemID: cart.Items[0].ID, Qty: 4,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("change quantity: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cart)
	if cart.CartTotal != "20.00" {
		t.Errorf("expected cart_total 20.00, got %s", cart.CartTotal)
	}

	// checkout
	resp = postJSON(t, srv.URL+"/api/checkout", checkoutRequest{
		UserID:     "user-1",
		CartIDs:    []string{cart.ID},
		FirstName:  "Oksana",
		LastName:   "Petrenko",
		Phone:      "+380501234567",
		Address:    "1 Khreshchatyk St",
		BuyingType: "delivery",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: status %d", resp.StatusCode)
	}
	var order checkoutResponse
	decodeBody(t, resp, &order)
	if order.Total != "20.00" {
		t.Errorf("expected order total 20.00, got %s", order.Total)
	}
	if order.Status != "received" {
		t.Errorf("expected status received, got %s", order.Status)
	}
}

func TestHTTP_AddUnknownProduct(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/cart", nil)
	var cart cartResponse
	decodeBody(t, resp, &cart)

	resp = postJSON(t, srv.URL+"/api/cart/add", cartMutationRequest{
		CartID: cart.ID, ProductSlug: "no-such-slug",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHTTP_InvalidQuantity(t *testing.T) {
	srv := newTestServer(t, galaxyProduct())

	resp := postJSON(t, srv.URL+"/api/cart", nil)
	var cart cartResponse
	decodeBody(t, resp, &cart)

	resp = postJSON(t, srv.URL+"/api/cart/add", cartMutationRequest{
		CartID: cart.ID, ProductSlug: "galaxy-s24",
	})
	decodeBody(t, resp, &cart)

	resp = postJSON(t, srv.URL+"/api/cart/quantity", changeQuantityRequest{
		CartID: cart.ID, ItemID: cart.Items[0].ID, Qty: 0,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for qty 0, got %d", resp.StatusCode)
	}
}

func TestHTTP_RemoveAbsentProductIsOK(t *testing.T) {
	srv := newTestServer(t, galaxyProduct())

	resp := postJSON(t, srv.URL+"/api/cart", nil)
	var cart cartResponse
	decodeBody(t, resp, &cart)

	resp = postJSON(t, srv.URL+"/api/cart/remove", cartMutationRequest{
		CartID: cart.ID, ProductSlug: "galaxy-s24",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for removing absent product, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &cart)
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestHTTP_GetProductBySlug(t *testing.T) {
	srv := newTestServer(t, galaxyProduct())

	resp, err := http.Get(srv.URL + "/api/product?slug=galaxy-s24")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var p productResponse
	decodeBody(t, resp, &p)
	if p.Price != "5.00" {
		t.Errorf("expected price 5.00, got %s", p.Price)
	}
}

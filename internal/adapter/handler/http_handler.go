package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/core/service"
)

// HTTPHandler decodes requests into the identifiers the core operations
// take (cart ids, item ids, product slugs) and encodes the resulting cart
// or order back as JSON.
type HTTPHandler struct {
	carts    *service.CartService
	checkout *service.CheckoutService
	catalog  *service.CatalogService
	logger   *zap.Logger
}

func NewHTTPHandler(carts *service.CartService, checkout *service.CheckoutService, catalog *service.CatalogService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{carts: carts, checkout: checkout, catalog: catalog, logger: logger}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/products", h.ListProducts)
	mux.HandleFunc("/api/product", h.GetProduct)
	mux.HandleFunc("/api/cart", h.Cart)
	mux.HandleFunc("/api/cart/add", h.AddToCart)
	mux.HandleFunc("/api/cart/remove", h.RemoveFromCart)
	mux.HandleFunc("/api/cart/quantity", h.ChangeQuantity)
	mux.HandleFunc("/api/checkout", h.Checkout)
}

type cartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
	ItemTotal string `json:"item_total"`
}

type cartResponse struct {
	ID        string             `json:"id"`
	Items     []cartItemResponse `json:"items"`
	CartTotal string             `json:"cart_total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	resp := cartResponse{
		ID:        cart.ID,
		Items:     make([]cartItemResponse, 0, len(cart.Items)),
		CartTotal: cart.CartTotal.StringFixed(2),
	}
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, cartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Qty:       item.Qty,
			ItemTotal: item.ItemTotal.StringFixed(2),
		})
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		products []domain.Product
		err      error
	)
	if categorySlug := r.URL.Query().Get("category"); categorySlug != "" {
		products, err = h.catalog.ListProductsByCategory(r.Context(), categorySlug)
	} else {
		products, err = h.catalog.ListAvailableProducts(r.Context())
	}
	if err != nil {
		h.serverError(w, "list products", err)
		return
	}

	writeJSON(w, http.StatusOK, productsToResponse(products))
}

type productResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

func productsToResponse(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:        p.ID,
			Title:     p.Title,
			Slug:      p.Slug,
			Price:     p.Price.StringFixed(2),
			Available: p.Available,
		})
	}
	return out
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "slug is required"})
		return
	}

	p, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		h.writeError(w, "get product", err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Price:     p.Price.StringFixed(2),
		Available: p.Available,
	})
}

// Cart creates a cart on POST and returns one on GET.
func (h *HTTPHandler) Cart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		cart, err := h.carts.Create(r.Context())
		if err != nil {
			h.serverError(w, "create cart", err)
			return
		}
		writeJSON(w, http.StatusCreated, toCartResponse(cart))

	case http.MethodGet:
		cartID := r.URL.Query().Get("id")
		if cartID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id is required"})
			return
		}
		cart, err := h.carts.Get(r.Context(), cartID)
		if err != nil {
			h.writeError(w, "get cart", err)
			return
		}
		writeJSON(w, http.StatusOK, toCartResponse(cart))

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type cartMutationRequest struct {
	CartID      string `json:"cart_id"`
	ProductSlug string `json:"product_slug"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartMutationRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.CartID == "" || req.ProductSlug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart_id and product_slug are required"})
		return
	}

	product, err := h.catalog.GetProductBySlug(r.Context(), req.ProductSlug)
	if err != nil {
		h.writeError(w, "resolve product", err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), req.CartID, product.ID)
	if err != nil {
		h.writeError(w, "add to cart", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartMutationRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.CartID == "" || req.ProductSlug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart_id and product_slug are required"})
		return
	}

	product, err := h.catalog.GetProductBySlug(r.Context(), req.ProductSlug)
	if err != nil {
		h.writeError(w, "resolve product", err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), req.CartID, product.ID)
	if err != nil {
		h.writeError(w, "remove from cart", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

type changeQuantityRequest struct {
	CartID string `json:"cart_id"`
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

func (h *HTTPHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.CartID == "" || req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart_id and item_id are required"})
		return
	}

	cart, err := h.carts.ChangeQuantity(r.Context(), req.CartID, req.ItemID, req.Qty)
	if err != nil {
		h.writeError(w, "change quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

type checkoutRequest struct {
	UserID     string   `json:"user_id"`
	CartIDs    []string `json:"cart_ids"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	Comments   string   `json:"comments"`
	BuyingType string   `json:"buying_type"`
}

type checkoutResponse struct {
	OrderID   string `json:"order_id"`
	Total     string `json:"total"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id is required"})
		return
	}

	contact := domain.ContactInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Comments:  req.Comments,
	}

	order, err := h.checkout.Checkout(r.Context(), req.UserID, req.CartIDs, contact, domain.BuyingType(req.BuyingType))
	if err != nil {
		h.writeError(w, "checkout", err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:   order.ID,
		Total:     order.Total.StringFixed(2),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps core errors to HTTP statuses: missing identifiers to
// 404, rejected input to 400, anything else to 500.
func (h *HTTPHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNoCarts),
		errors.Is(err, service.ErrInvalidBuyingType),
		errors.Is(err, service.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.serverError(w, op, err)
	}
}

func (h *HTTPHandler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

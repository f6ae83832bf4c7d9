package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/dukerupert/skuld/internal/router"
	"github.com/dukerupert/skuld/internal/service"
	"github.com/dukerupert/skuld/internal/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutHandler is the thin JSON adapter around the checkout core. Carts
// and the product catalog live in process memory; there is no persistence.
// The handler lock serializes all cart and catalog mutations, so concurrent
// requests against the same cart cannot interleave.
type CheckoutHandler struct {
	service service.CheckoutService
	ledger  stock.Ledger

	mu      sync.Mutex
	catalog map[string]domain.Product
	carts   map[string]*domain.Cart
}

// NewCheckoutHandler creates the handler.
func NewCheckoutHandler(svc service.CheckoutService, ledger stock.Ledger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		ledger:  ledger,
		catalog: make(map[string]domain.Product),
		carts:   make(map[string]*domain.Cart),
	}
}

// Routes registers all checkout routes on r.
func (h *CheckoutHandler) Routes(r *router.Router) {
	r.Post("/stock", h.RegisterStock)
	r.Post("/carts", h.CreateCart)
	r.Get("/carts/{id}", h.ViewCart)
	r.Post("/carts/{id}/items", h.AddItem)
	r.Put("/carts/{id}/items/{sku}", h.SetQuantity)
	r.Delete("/carts/{id}/items/{sku}", h.RemoveItem)
	r.Post("/carts/{id}/coupon", h.ApplyCoupon)
	r.Get("/carts/{id}/summary", h.Summary)
	r.Post("/carts/{id}/checkout", h.Finalize)
}

type registerStockRequest struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	WeightKg float64 `json:"weight_kg"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// RegisterStock handles POST /stock: registers a product and its available
// stock level. Re-posting a SKU overwrites both.
func (h *CheckoutHandler) RegisterStock(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req registerStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("stock.register", "invalid request body"))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, r, domain.Invalid("stock.register", "price must be a decimal string"))
		return
	}

	product, err := domain.NewProduct(req.SKU, req.Name, price, req.WeightKg, req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ledger.Register(product.SKU, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	h.catalog[product.SKU] = product

	writeJSON(w, http.StatusCreated, map[string]any{
		"sku":       product.SKU,
		"available": h.ledger.AvailableQuantity(product.SKU),
	})
}

// CreateCart handles POST /carts.
func (h *CheckoutHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	h.carts[id] = domain.NewCart()
	writeJSON(w, http.StatusCreated, map[string]string{"cart_id": id})
}

// ViewCart handles GET /carts/{id}.
func (h *CheckoutHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartView(cart))
}

type addItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// AddItem handles POST /carts/{id}/items.
func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("cart.add", "invalid request body"))
		return
	}

	product, ok := h.catalog[req.SKU]
	if !ok {
		writeError(w, r, domain.Errorf(domain.ENOTFOUND, "cart.add", "unknown SKU %s", req.SKU))
		return
	}

	if err := h.service.AddItem(cart, product, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cartView(cart))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity handles PUT /carts/{id}/items/{sku}.
func (h *CheckoutHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("cart.set_quantity", "invalid request body"))
		return
	}

	if err := h.service.SetQuantity(cart, r.PathValue("sku"), req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cartView(cart))
}

// RemoveItem handles DELETE /carts/{id}/items/{sku}.
func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(cart, r.PathValue("sku")); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cartView(cart))
}

type applyCouponRequest struct {
	Code       string `json:"code"`
	Percentage int    `json:"percentage"`
	ExpiresAt  string `json:"expires_at"` // YYYY-MM-DD
}

// ApplyCoupon handles POST /carts/{id}/coupon.
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("cart.apply_coupon", "invalid request body"))
		return
	}

	expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		writeError(w, r, domain.Invalid("cart.apply_coupon", "expires_at must be YYYY-MM-DD"))
		return
	}

	coupon := domain.NewCoupon(req.Code, req.Percentage, expiresAt)
	if err := h.service.ApplyCoupon(cart, coupon); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cartView(cart))
}

// Summary handles GET /carts/{id}/summary?destination=...
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		writeError(w, r, domain.Invalid("checkout.summary", "destination query parameter is required"))
		return
	}

	summary, err := h.service.ComputeSummary(cart, destination)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryView(summary))
}

type finalizeRequest struct {
	Destination string `json:"destination"`
}

// Finalize handles POST /carts/{id}/checkout.
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("checkout.finalize", "invalid request body"))
		return
	}
	if req.Destination == "" {
		writeError(w, r, domain.Invalid("checkout.finalize", "destination is required"))
		return
	}

	summary, err := h.service.Finalize(cart, req.Destination)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryView(summary))
}

func (h *CheckoutHandler) cart(w http.ResponseWriter, r *http.Request) (*domain.Cart, bool) {
	cart, ok := h.carts[r.PathValue("id")]
	if !ok {
		writeError(w, r, domain.Errorf(domain.ENOTFOUND, "cart.get", "cart not found"))
		return nil, false
	}
	return cart, true
}

type cartItemView struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type cartViewResponse struct {
	Items         []cartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	GrossValue    string         `json:"gross_value"`
	TotalWeightKg float64        `json:"total_weight_kg"`
	CouponCode    string         `json:"coupon_code,omitempty"`
}

func cartView(cart *domain.Cart) cartViewResponse {
	items := cart.Items()
	views := make([]cartItemView, len(items))
	for i, item := range items {
		views[i] = cartItemView{
			SKU:       item.Product.SKU,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
		}
	}

	resp := cartViewResponse{
		Items:         views,
		TotalQuantity: cart.TotalQuantity(),
		GrossValue:    cart.GrossValue().StringFixed(2),
		TotalWeightKg: cart.TotalWeight(),
	}
	if coupon := cart.Coupon(); coupon != nil {
		resp.CouponCode = coupon.Code
	}
	return resp
}

// summaryView maps an OrderSummary to the flat decimal-string representation
// used on the wire.
func summaryView(summary *service.OrderSummary) map[string]any {
	return map[string]any{
		"gross_value":             summary.GrossValue.StringFixed(2),
		"promotional_discount":    summary.PromotionalDiscount.StringFixed(2),
		"coupon_discount":         summary.CouponDiscount.StringFixed(2),
		"shipping_cost":           summary.Shipping.Cost.StringFixed(2),
		"shipping_lead_time_days": summary.Shipping.LeadTimeDays,
		"total":                   summary.Total.StringFixed(2),
	}
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"kisanagro-backend/cart"
	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

const cartSessionCookie = "cart_session"

// CartController handles HTTP requests for the session inquiry cart
type CartController struct {
	carts    repository.CartRepositoryInterface
	products repository.ProductRepositoryInterface
	inquiry  *service.InquiryService
}

// NewCartController creates a new CartController
func NewCartController(carts repository.CartRepositoryInterface, products repository.ProductRepositoryInterface, inquiry *service.InquiryService) *CartController {
	return &CartController{
		carts:    carts,
		products: products,
		inquiry:  inquiry,
	}
}

// sessionID returns the caller's cart session id, issuing a new cookie when
// create is true and no session exists yet. An empty return with create=false
// means the caller has no cart.
func (c *CartController) sessionID(w http.ResponseWriter, r *http.Request, create bool) string {
	if cookie, err := r.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if !create {
		return ""
	}
	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}

// GetCart handles GET /api/cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCart: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetCart: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := c.sessionID(w, r, false)
	if sessionID == "" {
		writeJSON(w, http.StatusOK, cart.New())
		return
	}

	ctx := context.Background()
	sessionCart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		log.Printf("❌ GetCart: Error loading cart: %v", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetCart: Session %s has %d items", sessionID, sessionCart.TotalItems())

	writeJSON(w, http.StatusOK, sessionCart)
}

// AddItem handles POST /api/cart/items
// Looks up the product to resolve its title, category and the fruit label
// of the chosen size, then merges the selection into the session cart
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ProductID == "" || strings.TrimSpace(req.Size) == "" {
		log.Printf("❌ AddItem: Missing productId or size")
		http.Error(w, "productId and size are required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		log.Printf("❌ AddItem: Invalid quantity: %d", req.Quantity)
		http.Error(w, "quantity must be greater than 0", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	product, err := c.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ AddItem: Product not found: %s", req.ProductID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ AddItem: Error fetching product: %v", err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	fruitName := ""
	for _, opt := range product.SizeOptions {
		if opt.Size == req.Size {
			fruitName = opt.Fruits
			break
		}
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	sessionID := c.sessionID(w, r, true)
	sessionCart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		log.Printf("❌ AddItem: Error loading cart: %v", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	sessionCart.AddSelection(cart.Selection{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		Category:     product.Category,
		Size:         req.Size,
		FruitName:    fruitName,
		Quantity:     req.Quantity,
		Unit:         unit,
		PricePerUnit: req.PricePerUnit,
	})

	if err := c.carts.Save(ctx, sessionID, sessionCart); err != nil {
		log.Printf("❌ AddItem: Error saving cart: %v", err)
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ AddItem: Session %s now has %d items", sessionID, sessionCart.TotalItems())

	writeJSON(w, http.StatusOK, sessionCart)
}

// UpdateItem handles PATCH /api/cart/items
// Overwrites the quantity of one size entry
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c.mutateCart(w, r, "UpdateItem", func(sessionCart *cart.Cart) error {
		return sessionCart.UpdateQuantity(req.ProductID, req.SizeIndex, req.Quantity)
	})
}

// RemoveItem handles DELETE /api/cart/items
// Removes one size entry, dropping the product when its last size goes
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RemoveItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RemoveCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ RemoveItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c.mutateCart(w, r, "RemoveItem", func(sessionCart *cart.Cart) error {
		return sessionCart.RemoveSize(req.ProductID, req.SizeIndex)
	})
}

// RemoveProduct handles DELETE /api/cart/products/{id}
func (c *CartController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RemoveProduct: Received %s request to %s", r.Method, r.URL.Path)

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/products/")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	c.mutateCart(w, r, "RemoveProduct", func(sessionCart *cart.Cart) error {
		sessionCart.RemoveProduct(productID)
		return nil
	})
}

// ClearCart handles DELETE /api/cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ClearCart: Received %s request to %s", r.Method, r.URL.Path)

	sessionID := c.sessionID(w, r, false)
	if sessionID == "" {
		writeJSON(w, http.StatusOK, cart.New())
		return
	}

	ctx := context.Background()
	if err := c.carts.Delete(ctx, sessionID); err != nil {
		log.Printf("❌ ClearCart: Error clearing cart: %v", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ClearCart: Session %s cleared", sessionID)

	writeJSON(w, http.StatusOK, cart.New())
}

// SubmitCart handles POST /api/cart/submit
// Runs the session cart through the inquiry submission pipeline. The cart
// is only discarded once the inquiry is committed to the store.
func (c *CartController) SubmitCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SubmitCart: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ SubmitCart: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmitCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ SubmitCart: Failed to decode request body: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()

	sessionID := c.sessionID(w, r, false)
	sessionCart := cart.New()
	if sessionID != "" {
		var err error
		sessionCart, err = c.carts.Get(ctx, sessionID)
		if err != nil {
			log.Printf("❌ SubmitCart: Error loading cart: %v", err)
			http.Error(w, "Failed to load cart", http.StatusInternalServerError)
			return
		}
	}

	response, err := c.inquiry.SubmitFromCart(ctx, &req, sessionCart.ToProductSelections())
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			log.Printf("❌ SubmitCart: Validation failed: %v", validationErr)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
			return
		}
		if errors.Is(err, repository.ErrStoreUnavailable) {
			log.Printf("❌ SubmitCart: Store unavailable: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Service temporarily unavailable"})
			return
		}
		log.Printf("❌ SubmitCart: Error submitting inquiry: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.InquiryErrorResponse{
			Error:   "Failed to submit inquiry",
			Details: err.Error(),
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	// The inquiry is committed, the cart can go
	if sessionID != "" {
		if err := c.carts.Delete(ctx, sessionID); err != nil {
			log.Printf("⚠️ SubmitCart: Failed to discard cart for session %s: %v", sessionID, err)
		}
	}

	log.Printf("✅ SubmitCart: Inquiry %s stored from session cart (emailSent=%v)", response.ID, response.EmailSent)

	writeJSON(w, http.StatusCreated, response)
}

// mutateCart loads the session cart, applies fn and saves the result.
// Cart errors map to 404 for unknown products and 400 for bad size indexes.
func (c *CartController) mutateCart(w http.ResponseWriter, r *http.Request, op string, fn func(*cart.Cart) error) {
	sessionID := c.sessionID(w, r, false)
	if sessionID == "" {
		log.Printf("⚠️ %s: No cart session", op)
		http.Error(w, "Cart is empty", http.StatusNotFound)
		return
	}

	ctx := context.Background()
	sessionCart, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		log.Printf("❌ %s: Error loading cart: %v", op, err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := fn(sessionCart); err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			log.Printf("⚠️ %s: Product not in cart", op)
			http.Error(w, "Product not in cart", http.StatusNotFound)
			return
		}
		if errors.Is(err, cart.ErrSizeNotFound) {
			log.Printf("⚠️ %s: Size index out of range", op)
			http.Error(w, "Size index out of range", http.StatusBadRequest)
			return
		}
		log.Printf("❌ %s: Error updating cart: %v", op, err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	if err := c.carts.Save(ctx, sessionID, sessionCart); err != nil {
		log.Printf("❌ %s: Error saving cart: %v", op, err)
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ %s: Session %s now has %d items", op, sessionID, sessionCart.TotalItems())

	writeJSON(w, http.StatusOK, sessionCart)
}

package router

import (
	"net/http"
	"strings"

	"kisanagro-backend/app/controller"
)

type Controllers struct {
	Product *controller.ProductController
	Inquiry *controller.InquiryController
	Cart    *controller.CartController
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Public product catalog
	http.HandleFunc("/api/products", controllers.Product.ListProducts)

	// Product detail by slug
	http.HandleFunc("/api/products/", controllers.Product.GetProductBySlug)

	// Inquiry submission
	http.HandleFunc("/api/inquiries", controllers.Inquiry.SubmitInquiry)

	// Session inquiry cart - GET (read) and DELETE (clear)
	http.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Cart.GetCart(w, r)
		case http.MethodDelete:
			controllers.Cart.ClearCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart size entries - POST (add), PATCH (update quantity), DELETE (remove)
	http.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			controllers.Cart.AddItem(w, r)
		case http.MethodPatch:
			controllers.Cart.UpdateItem(w, r)
		case http.MethodDelete:
			controllers.Cart.RemoveItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Remove a whole product from the cart
	http.HandleFunc("/api/cart/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Cart.RemoveProduct(w, r)
	})

	// Submit the session cart as an inquiry
	http.HandleFunc("/api/cart/submit", controllers.Cart.SubmitCart)

	// Admin product management - POST creates
	http.HandleFunc("/admin/products", controllers.Product.CreateProduct)

	// Product by id - handles PUT (update), DELETE (delete), plus the
	// image upload and Drive import sub-routes
	http.HandleFunc("/admin/products/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/images") {
			controllers.Product.UploadImages(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/import") {
			controllers.Product.ImportImages(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			controllers.Product.UpdateProduct(w, r)
		case http.MethodDelete:
			controllers.Product.DeleteProduct(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Admin inquiry list
	http.HandleFunc("/admin/inquiries", controllers.Inquiry.ListInquiries)

	// Inquiry status updates
	http.HandleFunc("/admin/inquiries/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/status") {
			controllers.Inquiry.UpdateInquiryStatus(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Printable catalog
	http.HandleFunc("/admin/catalog/render", controllers.Catalog.RenderCatalog)
	http.HandleFunc("/admin/catalog/pdf", controllers.Catalog.ExportCatalogPDF)
}

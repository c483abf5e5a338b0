package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

// ProductController handles HTTP requests for catalog products
type ProductController struct {
	repository repository.ProductRepositoryInterface
	compressor *service.ImageCompressor
	importer   *service.ImageImportService
	validate   *validator.Validate
}

// NewProductController creates a new ProductController.
// importer may be nil when Drive credentials are not configured.
func NewProductController(repo repository.ProductRepositoryInterface, compressor *service.ImageCompressor, importer *service.ImageImportService) *ProductController {
	return &ProductController{
		repository: repo,
		compressor: compressor,
		importer:   importer,
		validate:   validator.New(),
	}
}

// ListProducts handles GET /api/products
// Supports ?category=... and ?featured=true filters
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListProducts: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListProducts: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	featuredOnly := r.URL.Query().Get("featured") == "true"

	ctx := context.Background()
	products, err := c.repository.List(ctx, category, featuredOnly)
	if err != nil {
		log.Printf("❌ ListProducts: Error listing products: %v", err)
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListProducts: Returning %d products", len(products))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.ProductListResponse{Products: products}); err != nil {
		log.Printf("❌ ListProducts: Error encoding response: %v", err)
	}
}

// GetProductBySlug handles GET /api/products/{slug}
func (c *ProductController) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetProductBySlug: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetProductBySlug: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productSlug := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if productSlug == "" || strings.Contains(productSlug, "/") {
		http.Error(w, "Invalid product slug", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	product, err := c.repository.GetBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ GetProductBySlug: Product not found: %s", productSlug)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetProductBySlug: Error fetching product: %v", err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetProductBySlug: Returning product %s", product.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(product)
}

// CreateProduct handles POST /admin/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateProduct: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateProduct: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(&req); err != nil {
		log.Printf("❌ CreateProduct: Validation failed: %v", err)
		http.Error(w, fmt.Sprintf("Validation failed: %v", err), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	product := &models.Product{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Category:        req.Category,
		CustomCategory:  req.CustomCategory,
		Images:          req.Images,
		Description:     req.Description,
		Features:        req.Features,
		Featured:        req.Featured,
		PriceRange:      req.PriceRange,
		MinQuantity:     req.MinQuantity,
		SizeOptions:     req.SizeOptions,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx := context.Background()
	if err := c.repository.Create(ctx, product); err != nil {
		log.Printf("❌ CreateProduct: Error creating product: %v", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CreateProduct: Created product %s (%s)", product.ID, product.Slug)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// UpdateProduct handles PUT /admin/products/{id}
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateProduct: Received %s request to %s", r.Method, r.URL.Path)

	productID := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateProduct: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(&req); err != nil {
		log.Printf("❌ UpdateProduct: Validation failed: %v", err)
		http.Error(w, fmt.Sprintf("Validation failed: %v", err), http.StatusBadRequest)
		return
	}

	product := &models.Product{
		ID:              productID,
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Category:        req.Category,
		CustomCategory:  req.CustomCategory,
		Images:          req.Images,
		Description:     req.Description,
		Features:        req.Features,
		Featured:        req.Featured,
		PriceRange:      req.PriceRange,
		MinQuantity:     req.MinQuantity,
		SizeOptions:     req.SizeOptions,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		UpdatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	ctx := context.Background()
	if err := c.repository.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ UpdateProduct: Product not found: %s", productID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ UpdateProduct: Error updating product: %v", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UpdateProduct: Updated product %s", productID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(product)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteProduct: Received %s request to %s", r.Method, r.URL.Path)

	productID := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if err := c.repository.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ DeleteProduct: Product not found: %s", productID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ DeleteProduct: Error deleting product: %v", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ DeleteProduct: Deleted product %s", productID)

	w.WriteHeader(http.StatusNoContent)
}

// UploadImages handles POST /admin/products/{id}/images
// Accepts multipart form uploads under the "images" field, compresses each
// file and appends the resulting data URIs to the product
func (c *ProductController) UploadImages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadImages: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ UploadImages: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/products/"), "/images")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	// 64MB in-memory cap for the whole form, individual files are checked
	// against the compressor's own 10MB limit
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		log.Printf("❌ UploadImages: Failed to parse multipart form: %v", err)
		http.Error(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		log.Printf("❌ UploadImages: No images in request")
		http.Error(w, "No images provided", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if _, err := c.repository.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ UploadImages: Product not found: %s", productID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ UploadImages: Error fetching product: %v", err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	files := make([]service.ImageFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			log.Printf("❌ UploadImages: Failed to open %s: %v", fh.Filename, err)
			http.Error(w, fmt.Sprintf("Failed to read %s", fh.Filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			log.Printf("❌ UploadImages: Failed to read %s: %v", fh.Filename, err)
			http.Error(w, fmt.Sprintf("Failed to read %s", fh.Filename), http.StatusBadRequest)
			return
		}
		files = append(files, service.ImageFile{
			Name:         fh.Filename,
			MIMEType:     fh.Header.Get("Content-Type"),
			DeclaredSize: fh.Size,
			Data:         data,
		})
	}

	log.Printf("📸 UploadImages: Compressing %d images for product %s", len(files), productID)

	images, err := c.compressor.CompressAll(ctx, files)
	if err != nil {
		log.Printf("❌ UploadImages: Compression failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.repository.AppendImages(ctx, productID, images); err != nil {
		log.Printf("❌ UploadImages: Error saving images: %v", err)
		http.Error(w, "Failed to save images", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UploadImages: Added %d images to product %s", len(images), productID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.ImageUploadResponse{
		Uploaded: len(images),
		Images:   images,
	})
}

// ImportImages handles POST /admin/products/{id}/import?folderId=...
// Pulls images from a Google Drive folder, compresses them and appends
// the results to the product
func (c *ProductController) ImportImages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ImportImages: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ ImportImages: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.importer == nil {
		log.Printf("⚠️ ImportImages: Drive import not configured")
		http.Error(w, "Drive import is not configured", http.StatusServiceUnavailable)
		return
	}

	productID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/products/"), "/import")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		http.Error(w, "folderId query parameter is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	response, err := c.importer.ImportProductImages(ctx, productID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ ImportImages: Product not found: %s", productID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ ImportImages: Import failed: %v", err)
		http.Error(w, fmt.Sprintf("Import failed: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ImportImages: Imported %d/%d images for product %s", response.Imported, response.Total, productID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

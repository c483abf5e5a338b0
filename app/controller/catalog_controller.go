package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"kisanagro-backend/service"
)

// CatalogController handles HTTP requests for the printable product catalog
type CatalogController struct {
	service *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{
		service: svc,
	}
}

// RenderCatalog handles GET /admin/catalog/render
// Serves the HTML page that the PDF export prints
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderCatalog: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ RenderCatalog: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	html, err := c.service.RenderCatalogHTML(ctx)
	if err != nil {
		log.Printf("❌ RenderCatalog: Error rendering catalog: %v", err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ RenderCatalog: Rendered catalog page (%d bytes)", len(html))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// ExportCatalogPDF handles GET /admin/catalog/pdf
// Prints the catalog render page to PDF with headless Chrome and streams it
func (c *CatalogController) ExportCatalogPDF(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportCatalogPDF: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ExportCatalogPDF: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("🔄 ExportCatalogPDF: Generating PDF...")

	ctx := context.Background()
	pdf, err := c.service.GeneratePDF(ctx)
	if err != nil {
		log.Printf("❌ ExportCatalogPDF: Error generating PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("kisanagro-catalog-%s.pdf", time.Now().Format("2006-01-02"))

	log.Printf("✅ ExportCatalogPDF: Generated %s (%d bytes)", filename, len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

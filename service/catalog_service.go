package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/utils"
)

// CatalogService renders the product catalog as HTML and prints it to PDF
// with headless Chrome
type CatalogService struct {
	products repository.ProductRepositoryInterface
	baseURL  string
	tmpl     *template.Template
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products repository.ProductRepositoryInterface, baseURL string) (*CatalogService, error) {
	tmpl, err := template.New("catalog").Parse(catalogTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog template: %w", err)
	}

	return &CatalogService{
		products: products,
		baseURL:  baseURL,
		tmpl:     tmpl,
	}, nil
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type catalogItem struct {
	Title       string
	Category    string
	Description string
	Image       string // data URI, embedded directly
	PriceText   string
	MinQuantity string
	SizeOptions []models.SizeOption
}

type catalogData struct {
	GeneratedAt string
	Items       []catalogItem
}

// RenderCatalogHTML renders the full catalog page
func (s *CatalogService) RenderCatalogHTML(ctx context.Context) (string, error) {
	products, err := s.products.List(ctx, "", false)
	if err != nil {
		return "", err
	}

	data := catalogData{
		GeneratedAt: time.Now().Format("2 January 2006"),
	}
	for _, p := range products {
		item := catalogItem{
			Title:       p.Title,
			Category:    p.Category,
			Description: utils.TruncateText(p.Description, 220),
			MinQuantity: p.MinQuantity,
			SizeOptions: p.SizeOptions,
		}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		if p.PriceRange != nil {
			item.PriceText = fmt.Sprintf("%s - %s", utils.FormatINR(p.PriceRange.Min), utils.FormatINR(p.PriceRange.Max))
		}
		data.Items = append(data.Items, item)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute catalog template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the catalog render endpoint to an A4 PDF
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/admin/catalog/render"

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

const catalogTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; margin: 0; color: #1f2937; }
  .header { background: #16a34a; color: white; padding: 24px; text-align: center; }
  .header h1 { margin: 0; font-size: 26px; }
  .header p { margin: 6px 0 0 0; color: #dcfce7; font-size: 13px; }
  .item { padding: 18px 24px; border-bottom: 1px solid #e5e7eb; page-break-inside: avoid; }
  .item h2 { margin: 0 0 4px 0; font-size: 18px; color: #15803d; }
  .item .category { font-size: 12px; color: #6b7280; margin-bottom: 8px; }
  .item img { max-width: 180px; max-height: 140px; float: right; margin-left: 16px; border-radius: 6px; }
  .item .price { font-weight: bold; margin: 8px 0; }
  table { border-collapse: collapse; font-size: 12px; margin-top: 8px; }
  th, td { border: 1px solid #d1d5db; padding: 4px 8px; text-align: left; }
  th { background: #f0fdf4; }
  .clear { clear: both; }
</style>
</head>
<body>
  <div class="header">
    <h1>KisanAgro Product Catalog</h1>
    <p>Premium Fruit Protection &mdash; Generated {{.GeneratedAt}}</p>
  </div>
  {{range .Items}}
  <div class="item">
    {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
    <h2>{{.Title}}</h2>
    <div class="category">{{.Category}}</div>
    <p>{{.Description}}</p>
    {{if .PriceText}}<div class="price">{{.PriceText}}</div>{{end}}
    {{if .MinQuantity}}<div>Minimum order: {{.MinQuantity}}</div>{{end}}
    {{if .SizeOptions}}
    <table>
      <tr><th>Size</th><th>Fruit</th><th>Price</th></tr>
      {{range .SizeOptions}}<tr><td>{{.Size}}</td><td>{{.Fruits}}</td><td>{{.Price}}</td></tr>{{end}}
    </table>
    {{end}}
    <div class="clear"></div>
  </div>
  {{end}}
</body>
</html>
`

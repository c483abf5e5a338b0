package models

// SizeOption represents one size/fruit/price option of a product
type SizeOption struct {
	Size   string `json:"size"`
	Fruits string `json:"fruits"`
	Price  string `json:"price"`
}

// PriceRange represents the indicative price band of a product
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Product represents a catalog product
type Product struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Category        string       `json:"category"`
	CustomCategory  string       `json:"customCategory,omitempty"`
	Images          []string     `json:"images"` // base64 data URIs
	Description     string       `json:"description"`
	Features        []string     `json:"features"`
	Featured        bool         `json:"featured,omitempty"`
	PriceRange      *PriceRange  `json:"priceRange,omitempty"`
	MinQuantity     string       `json:"minQuantity,omitempty"`
	SizeOptions     []SizeOption `json:"sizeOptions,omitempty"`
	MetaTitle       string       `json:"metaTitle,omitempty"`
	MetaDescription string       `json:"metaDescription,omitempty"`
	CreatedAt       string       `json:"createdAt"`
	UpdatedAt       string       `json:"updatedAt"`
}

// CreateProductRequest represents the request body for creating a product
// Example: {"title": "Apple Foam Net", "category": "Foam Nets", "description": "Protective foam net for apples", "sizeOptions": [{"size": "40x80x180 mm", "fruits": "Apple", "price": "2.50"}]}
type CreateProductRequest struct {
	Title           string       `json:"title" validate:"required"`
	Category        string       `json:"category" validate:"required"`
	CustomCategory  string       `json:"customCategory"`
	Description     string       `json:"description" validate:"required"`
	Features        []string     `json:"features"`
	Featured        bool         `json:"featured"`
	PriceRange      *PriceRange  `json:"priceRange"`
	MinQuantity     string       `json:"minQuantity"`
	SizeOptions     []SizeOption `json:"sizeOptions"`
	MetaTitle       string       `json:"metaTitle"`
	MetaDescription string       `json:"metaDescription"`
	Images          []string     `json:"images"`
}

// UpdateProductRequest represents the request body for updating a product.
// Shape matches CreateProductRequest; all fields are applied as given.
type UpdateProductRequest struct {
	Title           string       `json:"title" validate:"required"`
	Category        string       `json:"category" validate:"required"`
	CustomCategory  string       `json:"customCategory"`
	Description     string       `json:"description" validate:"required"`
	Features        []string     `json:"features"`
	Featured        bool         `json:"featured"`
	PriceRange      *PriceRange  `json:"priceRange"`
	MinQuantity     string       `json:"minQuantity"`
	SizeOptions     []SizeOption `json:"sizeOptions"`
	MetaTitle       string       `json:"metaTitle"`
	MetaDescription string       `json:"metaDescription"`
	Images          []string     `json:"images"`
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// ImageUploadResponse represents the response after uploading product images
// Example response: {"uploaded": 2, "images": ["data:image/jpeg;base64,...", "data:image/jpeg;base64,..."]}
type ImageUploadResponse struct {
	Uploaded int      `json:"uploaded"`
	Images   []string `json:"images"`
}

// ImageImportResponse represents the response after importing images from Drive
// Example response: {"total": 5, "imported": 4, "failed": 1, "errors": ["photo7.heic: not an image"]}
type ImageImportResponse struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

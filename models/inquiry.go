package models

// Inquiry status lifecycle: new -> contacted -> resolved
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusResolved  = "resolved"
)

// ProductInquiryItem represents one product line in a multi-product inquiry (legacy list format)
type ProductInquiryItem struct {
	ProductID    string `json:"productId"`
	ProductTitle string `json:"productTitle"`
	FruitName    string `json:"fruitName"`
	Size         string `json:"size"`
	Quantity     string `json:"quantity"`
}

// ProductSelection represents one product line with full details, including a captured price snapshot
type ProductSelection struct {
	ProductID    string `json:"productId"`
	ProductTitle string `json:"productTitle"`
	Category     string `json:"category,omitempty"`
	FruitName    string `json:"fruitName"`
	Size         string `json:"size"`
	Quantity     string `json:"quantity"`
	Price        string `json:"price,omitempty"`
}

// SelectedSize is one size/quantity tuple inside an InquiryProduct
type SelectedSize struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// InquiryProduct is the flat submission shape produced by the inquiry cart
type InquiryProduct struct {
	ProductID     string         `json:"productId"`
	ProductTitle  string         `json:"productTitle"`
	SelectedSizes []SelectedSize `json:"selectedSizes"`
}

// Inquiry represents a stored customer inquiry
type Inquiry struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	City  string `json:"city"`
	// Single product inquiry (legacy)
	ProductID    string `json:"productId,omitempty"`
	ProductTitle string `json:"productTitle,omitempty"`
	FruitName    string `json:"fruitName,omitempty"`
	Size         string `json:"size,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	// Multiple products inquiry (legacy list format)
	Products []ProductInquiryItem `json:"products,omitempty"`
	// Multiple products inquiry (enhanced format)
	SelectedProducts []ProductSelection `json:"selectedProducts,omitempty"`
	Message          string             `json:"message"`
	CreatedAt        string             `json:"createdAt,omitempty"`
	NotifiedEmail    bool               `json:"notifiedEmail"`
	NotifiedWhatsapp bool               `json:"notifiedWhatsapp"`
	Status           string             `json:"status,omitempty"`
}

// SubmitInquiryRequest represents the request body for POST /api/inquiries
// Example: {"name": "Ravi", "email": "ravi@example.com", "phone": "9876543210", "city": "Nashik", "message": "Need pricing", "products": [{"productId": "abc", "productTitle": "Apple Foam Net", "fruitName": "Apple", "size": "40x80x180 mm", "quantity": "5000"}]}
type SubmitInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Message string `json:"message"`
	// Legacy single product fields
	ProductID    string `json:"productId,omitempty"`
	ProductTitle string `json:"productTitle,omitempty"`
	FruitName    string `json:"fruitName,omitempty"`
	Size         string `json:"size,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	// Multi-product formats
	Products         []ProductInquiryItem `json:"products,omitempty"`
	SelectedProducts []ProductSelection   `json:"selectedProducts,omitempty"`
}

// SubmitInquiryResponse represents the 201 response for a stored inquiry
// Example response: {"success": true, "id": "8f7c...", "emailSent": false, "message": "Inquiry submitted successfully! Email notification failed but your inquiry was saved."}
type SubmitInquiryResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	EmailSent bool   `json:"emailSent"`
	Message   string `json:"message"`
}

// InquiryErrorResponse represents a 500 error response with diagnostic detail
type InquiryErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// InquiryListResponse represents the response for listing inquiries
type InquiryListResponse struct {
	Inquiries []Inquiry `json:"inquiries"`
}

// UpdateInquiryStatusRequest represents the request body for updating inquiry status
// Example: {"status": "contacted"}
type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}

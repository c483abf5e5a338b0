package models

// AddCartItemRequest represents the request body for adding a selection to the inquiry cart
// Example: {"productId": "abc", "size": "40x80x180 mm", "quantity": 100, "unit": "pcs", "pricePerUnit": 2.5}
type AddCartItemRequest struct {
	ProductID    string  `json:"productId"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// UpdateCartItemRequest represents the request body for overwriting a size quantity
// Example: {"productId": "abc", "sizeIndex": 0, "quantity": 250}
type UpdateCartItemRequest struct {
	ProductID string `json:"productId"`
	SizeIndex int    `json:"sizeIndex"`
	Quantity  int    `json:"quantity"`
}

// RemoveCartItemRequest represents the request body for removing one size entry
// Example: {"productId": "abc", "sizeIndex": 0}
type RemoveCartItemRequest struct {
	ProductID string `json:"productId"`
	SizeIndex int    `json:"sizeIndex"`
}

// SubmitCartRequest represents the contact fields for submitting the session cart as an inquiry
// Example: {"name": "Ravi", "email": "ravi@example.com", "phone": "9876543210", "city": "Nashik", "message": "Need bulk pricing"}
type SubmitCartRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Message string `json:"message"`
}

package cart

import (
	"errors"
	"strconv"

	"kisanagro-backend/models"
)

var (
	// ErrProductNotFound is returned when an operation references a product that is not in the cart
	ErrProductNotFound = errors.New("product not found in cart")
	// ErrSizeNotFound is returned when a size index is out of range for a product's entries
	ErrSizeNotFound = errors.New("size entry not found in cart")
)

// SelectedSize is one chosen size of a product, with its running quantity
// and a price snapshot captured at selection time
type SelectedSize struct {
	Size         string  `json:"size"`
	FruitName    string  `json:"fruitName"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// SelectedProduct groups all chosen sizes of one product
type SelectedProduct struct {
	ProductID     string         `json:"productId"`
	ProductTitle  string         `json:"productTitle"`
	Category      string         `json:"category,omitempty"`
	SelectedSizes []SelectedSize `json:"selectedSizes"`
}

// Cart aggregates a visitor's product selections for the lifetime of a session.
// It is a plain value with no I/O: callers persist it (or not) themselves.
// Invariant: no product entry ever has zero sizes, and no two sizes of the
// same product share a size label.
type Cart struct {
	Products []SelectedProduct `json:"products"`
}

// Selection carries everything needed to add one line to the cart
type Selection struct {
	ProductID    string
	ProductTitle string
	Category     string
	Size         string
	FruitName    string
	Quantity     int
	Unit         string
	PricePerUnit float64
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// AddSelection adds a (product, size) selection to the cart.
// If the product already has an entry for the same size label, the quantity
// is incremented; otherwise a new size entry is appended. New products are
// appended in selection order.
func (c *Cart) AddSelection(sel Selection) {
	entry := SelectedSize{
		Size:         sel.Size,
		FruitName:    sel.FruitName,
		Quantity:     sel.Quantity,
		Unit:         sel.Unit,
		PricePerUnit: sel.PricePerUnit,
	}

	for i := range c.Products {
		if c.Products[i].ProductID != sel.ProductID {
			continue
		}
		for j := range c.Products[i].SelectedSizes {
			if c.Products[i].SelectedSizes[j].Size == sel.Size {
				c.Products[i].SelectedSizes[j].Quantity += sel.Quantity
				return
			}
		}
		c.Products[i].SelectedSizes = append(c.Products[i].SelectedSizes, entry)
		return
	}

	c.Products = append(c.Products, SelectedProduct{
		ProductID:     sel.ProductID,
		ProductTitle:  sel.ProductTitle,
		Category:      sel.Category,
		SelectedSizes: []SelectedSize{entry},
	})
}

// UpdateQuantity overwrites the quantity of one size entry.
// A quantity <= 0 is ignored so a stray zero can never wipe an entry.
// Referencing a product or index that does not exist returns an error rather
// than silently doing nothing.
func (c *Cart) UpdateQuantity(productID string, sizeIndex, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	i := c.productIndex(productID)
	if i < 0 {
		return ErrProductNotFound
	}
	if sizeIndex < 0 || sizeIndex >= len(c.Products[i].SelectedSizes) {
		return ErrSizeNotFound
	}

	c.Products[i].SelectedSizes[sizeIndex].Quantity = quantity
	return nil
}

// RemoveSize removes exactly one size entry. Removing a product's last size
// removes the product itself, so no product lingers with an empty size list.
func (c *Cart) RemoveSize(productID string, sizeIndex int) error {
	i := c.productIndex(productID)
	if i < 0 {
		return ErrProductNotFound
	}
	sizes := c.Products[i].SelectedSizes
	if sizeIndex < 0 || sizeIndex >= len(sizes) {
		return ErrSizeNotFound
	}

	c.Products[i].SelectedSizes = append(sizes[:sizeIndex], sizes[sizeIndex+1:]...)
	if len(c.Products[i].SelectedSizes) == 0 {
		c.Products = append(c.Products[:i], c.Products[i+1:]...)
	}
	return nil
}

// RemoveProduct removes all entries of a product unconditionally
func (c *Cart) RemoveProduct(productID string) {
	i := c.productIndex(productID)
	if i < 0 {
		return
	}
	c.Products = append(c.Products[:i], c.Products[i+1:]...)
}

// Clear empties the cart entirely
func (c *Cart) Clear() {
	c.Products = nil
}

// TotalItems returns the sum of all quantities across all products.
// Recomputed on every call, never cached.
func (c *Cart) TotalItems() int {
	total := 0
	for _, p := range c.Products {
		for _, s := range p.SelectedSizes {
			total += s.Quantity
		}
	}
	return total
}

// ToInquiryProducts maps the cart into the flat list shape expected by the
// inquiry submission payload.
func (c *Cart) ToInquiryProducts() []models.InquiryProduct {
	out := make([]models.InquiryProduct, 0, len(c.Products))
	for _, p := range c.Products {
		sizes := make([]models.SelectedSize, 0, len(p.SelectedSizes))
		for _, s := range p.SelectedSizes {
			sizes = append(sizes, models.SelectedSize{
				Size:     s.Size,
				Quantity: s.Quantity,
				Unit:     s.Unit,
			})
		}
		out = append(out, models.InquiryProduct{
			ProductID:     p.ProductID,
			ProductTitle:  p.ProductTitle,
			SelectedSizes: sizes,
		})
	}
	return out
}

// ToProductSelections flattens the cart into one selection row per
// (product, size) pair, the enhanced format the submission pipeline stores.
func (c *Cart) ToProductSelections() []models.ProductSelection {
	var out []models.ProductSelection
	for _, p := range c.Products {
		for _, s := range p.SelectedSizes {
			sel := models.ProductSelection{
				ProductID:    p.ProductID,
				ProductTitle: p.ProductTitle,
				Category:     p.Category,
				FruitName:    s.FruitName,
				Size:         s.Size,
				Quantity:     strconv.Itoa(s.Quantity) + " " + s.Unit,
			}
			if s.PricePerUnit > 0 {
				sel.Price = strconv.FormatFloat(s.PricePerUnit, 'f', -1, 64)
			}
			out = append(out, sel)
		}
	}
	return out
}

func (c *Cart) productIndex(productID string) int {
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			return i
		}
	}
	return -1
}

package repository

import (
	"context"
	"errors"

	"kisanagro-backend/cart"
	"kisanagro-backend/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable is returned when the backing store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ProductRepositoryInterface defines the contract for product catalog operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, category string, featuredOnly bool) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	AppendImages(ctx context.Context, id string, images []string) error
}

// InquiryRepositoryInterface defines the contract for inquiry record operations
type InquiryRepositoryInterface interface {
	Insert(ctx context.Context, inquiry *models.Inquiry) (string, error)
	List(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	MarkEmailNotified(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// CartRepositoryInterface defines the contract for session inquiry cart storage
type CartRepositoryInterface interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

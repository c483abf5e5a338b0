package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"kisanagro-backend/db"
	"kisanagro-backend/models"
)

// ProductRepository handles database operations for catalog products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, title, slug, category, custom_category, images, description, features,
		featured, price_min, price_max, min_quantity, size_options, meta_title, meta_description,
		created_at, updated_at`

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	log.Printf("📦 Create: Creating product title=%s, slug=%s", product.Title, product.Slug)

	images, features, sizeOptions, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, title, slug, category, custom_category, images, description, features,
			featured, price_min, price_max, min_quantity, size_options, meta_title, meta_description,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
		RETURNING created_at, updated_at
	`

	var priceMin, priceMax sql.NullInt64
	if product.PriceRange != nil {
		priceMin = sql.NullInt64{Int64: product.PriceRange.Min, Valid: true}
		priceMax = sql.NullInt64{Int64: product.PriceRange.Max, Valid: true}
	}

	err = db.DB.QueryRowContext(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Category,
		sql.NullString{String: product.CustomCategory, Valid: product.CustomCategory != ""},
		images,
		product.Description,
		features,
		product.Featured,
		priceMin,
		priceMax,
		sql.NullString{String: product.MinQuantity, Valid: product.MinQuantity != ""},
		sizeOptions,
		sql.NullString{String: product.MetaTitle, Valid: product.MetaTitle != ""},
		sql.NullString{String: product.MetaDescription, Valid: product.MetaDescription != ""},
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		log.Printf("❌ Create: Error creating product: %v", err)
		return fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("✅ Create: Successfully created product id=%s", product.ID)
	return nil
}

// GetByID fetches a product by its identifier
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySlug fetches a product by its URL slug
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *ProductRepository) getOne(ctx context.Context, query string, arg any) (*models.Product, error) {
	row := db.DB.QueryRowContext(ctx, query, arg)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// List fetches products, optionally filtered by category and featured flag.
// Results are ordered newest first.
func (r *ProductRepository) List(ctx context.Context, category string, featuredOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if featuredOnly {
		query += " AND featured = true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error listing products: %v", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Update overwrites all editable fields of a product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	log.Printf("📦 Update: Updating product id=%s", product.ID)

	images, features, sizeOptions, err := marshalProductJSON(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET title = $2, slug = $3, category = $4, custom_category = $5, images = $6,
			description = $7, features = $8, featured = $9, price_min = $10, price_max = $11,
			min_quantity = $12, size_options = $13, meta_title = $14, meta_description = $15,
			updated_at = now()
		WHERE id = $1
	`

	var priceMin, priceMax sql.NullInt64
	if product.PriceRange != nil {
		priceMin = sql.NullInt64{Int64: product.PriceRange.Min, Valid: true}
		priceMax = sql.NullInt64{Int64: product.PriceRange.Max, Valid: true}
	}

	res, err := db.DB.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Category,
		sql.NullString{String: product.CustomCategory, Valid: product.CustomCategory != ""},
		images,
		product.Description,
		features,
		product.Featured,
		priceMin,
		priceMax,
		sql.NullString{String: product.MinQuantity, Valid: product.MinQuantity != ""},
		sizeOptions,
		sql.NullString{String: product.MetaTitle, Valid: product.MetaTitle != ""},
		sql.NullString{String: product.MetaDescription, Valid: product.MetaDescription != ""},
	)
	if err != nil {
		log.Printf("❌ Update: Error updating product: %v", err)
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	log.Printf("✅ Update: Successfully updated product id=%s", product.ID)
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	log.Printf("📦 Delete: Deleting product id=%s", id)

	res, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ Delete: Error deleting product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	log.Printf("✅ Delete: Successfully deleted product id=%s", id)
	return nil
}

// AppendImages appends compressed data URIs to a product's image list
func (r *ProductRepository) AppendImages(ctx context.Context, id string, images []string) error {
	log.Printf("📦 AppendImages: Appending %d image(s) to product id=%s", len(images), id)

	encoded, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		UPDATE products
		SET images = images || $2::jsonb, updated_at = now()
		WHERE id = $1
	`

	res, err := db.DB.ExecContext(ctx, query, id, encoded)
	if err != nil {
		log.Printf("❌ AppendImages: Error appending images: %v", err)
		return fmt.Errorf("failed to append images: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check append result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func marshalProductJSON(product *models.Product) (images, features, sizeOptions []byte, err error) {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Features == nil {
		product.Features = []string{}
	}
	if product.SizeOptions == nil {
		product.SizeOptions = []models.SizeOption{}
	}

	images, err = json.Marshal(product.Images)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	features, err = json.Marshal(product.Features)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal features: %w", err)
	}
	sizeOptions, err = json.Marshal(product.SizeOptions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal size options: %w", err)
	}
	return images, features, sizeOptions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var customCategory, minQuantity, metaTitle, metaDescription sql.NullString
	var priceMin, priceMax sql.NullInt64
	var images, features, sizeOptions []byte

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Slug,
		&product.Category,
		&customCategory,
		&images,
		&product.Description,
		&features,
		&product.Featured,
		&priceMin,
		&priceMax,
		&minQuantity,
		&sizeOptions,
		&metaTitle,
		&metaDescription,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customCategory.Valid {
		product.CustomCategory = customCategory.String
	}
	if minQuantity.Valid {
		product.MinQuantity = minQuantity.String
	}
	if metaTitle.Valid {
		product.MetaTitle = metaTitle.String
	}
	if metaDescription.Valid {
		product.MetaDescription = metaDescription.String
	}
	if priceMin.Valid && priceMax.Valid {
		product.PriceRange = &models.PriceRange{Min: priceMin.Int64, Max: priceMax.Int64}
	}

	if err := json.Unmarshal(images, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	if err := json.Unmarshal(features, &product.Features); err != nil {
		return nil, fmt.Errorf("failed to unmarshal features: %w", err)
	}
	if err := json.Unmarshal(sizeOptions, &product.SizeOptions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal size options: %w", err)
	}

	return &product, nil
}

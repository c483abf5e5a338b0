package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"kisanagro-backend/db"
	"kisanagro-backend/models"
)

// InquiryRepository handles database operations for customer inquiries
type InquiryRepository struct{}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository() *InquiryRepository {
	return &InquiryRepository{}
}

// Ensure InquiryRepository implements InquiryRepositoryInterface
var _ InquiryRepositoryInterface = (*InquiryRepository)(nil)

// Ping verifies the store is reachable. The submission pipeline calls this
// before accepting an inquiry so an outage surfaces as 503, not 500.
func (r *InquiryRepository) Ping(ctx context.Context) error {
	if err := db.DB.PingContext(ctx); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// Insert stores a new inquiry and returns its assigned identifier
func (r *InquiryRepository) Insert(ctx context.Context, inquiry *models.Inquiry) (string, error) {
	log.Printf("💾 Insert: Saving inquiry from %s <%s>", inquiry.Name, inquiry.Email)

	var products, selectedProducts []byte
	var err error
	if inquiry.Products != nil {
		products, err = json.Marshal(inquiry.Products)
		if err != nil {
			return "", fmt.Errorf("failed to marshal products: %w", err)
		}
	}
	if inquiry.SelectedProducts != nil {
		selectedProducts, err = json.Marshal(inquiry.SelectedProducts)
		if err != nil {
			return "", fmt.Errorf("failed to marshal selected products: %w", err)
		}
	}

	id := uuid.NewString()

	query := `
		INSERT INTO inquiries (id, name, email, phone, city, message,
			product_id, product_title, fruit_name, size, quantity,
			products, selected_products, notified_email, notified_whatsapp, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, false, false, $14, now())
	`

	_, err = db.DB.ExecContext(ctx, query,
		id,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.City,
		inquiry.Message,
		sql.NullString{String: inquiry.ProductID, Valid: inquiry.ProductID != ""},
		sql.NullString{String: inquiry.ProductTitle, Valid: inquiry.ProductTitle != ""},
		sql.NullString{String: inquiry.FruitName, Valid: inquiry.FruitName != ""},
		sql.NullString{String: inquiry.Size, Valid: inquiry.Size != ""},
		sql.NullString{String: inquiry.Quantity, Valid: inquiry.Quantity != ""},
		nullableJSON(products),
		nullableJSON(selectedProducts),
		models.InquiryStatusNew,
	)
	if err != nil {
		log.Printf("❌ Insert: Error saving inquiry: %v", err)
		return "", fmt.Errorf("failed to save inquiry: %w", err)
	}

	log.Printf("✅ Insert: Inquiry saved with id=%s", id)
	return id, nil
}

// List fetches all inquiries, newest first
func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	query := `
		SELECT id, name, email, phone, city, message,
			product_id, product_title, fruit_name, size, quantity,
			products, selected_products, notified_email, notified_whatsapp, status, created_at
		FROM inquiries
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error listing inquiries: %v", err)
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		var inquiry models.Inquiry
		var productID, productTitle, fruitName, size, quantity sql.NullString
		var products, selectedProducts []byte

		err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Email,
			&inquiry.Phone,
			&inquiry.City,
			&inquiry.Message,
			&productID,
			&productTitle,
			&fruitName,
			&size,
			&quantity,
			&products,
			&selectedProducts,
			&inquiry.NotifiedEmail,
			&inquiry.NotifiedWhatsapp,
			&inquiry.Status,
			&inquiry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}

		if productID.Valid {
			inquiry.ProductID = productID.String
		}
		if productTitle.Valid {
			inquiry.ProductTitle = productTitle.String
		}
		if fruitName.Valid {
			inquiry.FruitName = fruitName.String
		}
		if size.Valid {
			inquiry.Size = size.String
		}
		if quantity.Valid {
			inquiry.Quantity = quantity.String
		}
		if products != nil {
			if err := json.Unmarshal(products, &inquiry.Products); err != nil {
				return nil, fmt.Errorf("failed to unmarshal products: %w", err)
			}
		}
		if selectedProducts != nil {
			if err := json.Unmarshal(selectedProducts, &inquiry.SelectedProducts); err != nil {
				return nil, fmt.Errorf("failed to unmarshal selected products: %w", err)
			}
		}

		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateStatus moves an inquiry through its lifecycle (new -> contacted -> resolved)
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	log.Printf("📦 UpdateStatus: Setting inquiry id=%s status=%s", id, status)

	res, err := db.DB.ExecContext(ctx, `UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		log.Printf("❌ UpdateStatus: Error updating status: %v", err)
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkEmailNotified flags an inquiry's notification email as delivered.
// Best-effort bookkeeping after the fact; a failure here is logged by the
// caller and never unwinds the stored inquiry.
func (r *InquiryRepository) MarkEmailNotified(ctx context.Context, id string) error {
	_, err := db.DB.ExecContext(ctx, `UPDATE inquiries SET notified_email = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark inquiry notified: %w", err)
	}
	return nil
}

func nullableJSON(data []byte) any {
	if data == nil {
		return nil
	}
	return data
}

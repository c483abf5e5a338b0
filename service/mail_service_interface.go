package service

import (
	"context"

	"kisanagro-backend/models"
)

// MailServiceInterface defines the contract for inquiry notification dispatch
type MailServiceInterface interface {
	SendInquiryEmail(ctx context.Context, inquiry *models.Inquiry) error
}

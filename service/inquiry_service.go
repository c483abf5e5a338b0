package service

import (
	"context"
	"log"
	"strings"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/utils"
)

// ValidationError is a user-facing input rejection. The submission pipeline
// returns the first violation only; controllers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// InquiryService runs the inquiry submission pipeline: validate, sanitize,
// persist, then best-effort notify. The store write is the success condition;
// a failed notification is reported as a flag, never as a request failure.
type InquiryService struct {
	repository repository.InquiryRepositoryInterface
	mailer     MailServiceInterface
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(repo repository.InquiryRepositoryInterface, mailer MailServiceInterface) *InquiryService {
	return &InquiryService{
		repository: repo,
		mailer:     mailer,
	}
}

// Submit validates and stores one inquiry, then attempts the notification.
// Returns a ValidationError for input rejections (no store access happens in
// that case) and repository.ErrStoreUnavailable when the store is down.
func (s *InquiryService) Submit(ctx context.Context, req *models.SubmitInquiryRequest) (*models.SubmitInquiryResponse, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	if err := s.repository.Ping(ctx); err != nil {
		return nil, err
	}

	inquiry := buildInquiry(req)

	id, err := s.repository.Insert(ctx, inquiry)
	if err != nil {
		return nil, err
	}
	inquiry.ID = id

	// The inquiry is durably stored at this point. Notification is a separate,
	// best-effort step whose failure must not unwind the write.
	emailSent := false
	if err := s.mailer.SendInquiryEmail(ctx, inquiry); err != nil {
		log.Printf("⚠️  Email notification failed for inquiry id=%s: %v", id, err)
	} else {
		emailSent = true
		if err := s.repository.MarkEmailNotified(ctx, id); err != nil {
			log.Printf("⚠️  Failed to mark inquiry id=%s as notified: %v", id, err)
		}
	}

	message := "Inquiry submitted successfully! Email notification sent."
	if !emailSent {
		message = "Inquiry submitted successfully! Email notification failed but your inquiry was saved."
	}

	return &models.SubmitInquiryResponse{
		Success:   true,
		ID:        id,
		EmailSent: emailSent,
		Message:   message,
	}, nil
}

// validateSubmission applies the checks in order and stops at the first
// violation. Each failure carries its own user-facing message.
func validateSubmission(req *models.SubmitInquiryRequest) error {
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Phone == "" || strings.TrimSpace(req.City) == "" {
		return newValidationError("Missing required fields")
	}
	if !utils.ValidateEmail(req.Email) {
		return newValidationError("Please enter a valid email address")
	}
	if !utils.ValidatePhone(req.Phone) {
		return newValidationError("Please enter a valid 10-digit phone number")
	}
	if !hasSelection(req) {
		return newValidationError("Please select at least one product")
	}
	if !selectionsComplete(req) {
		return newValidationError("Please fill all fields for selected products")
	}
	return nil
}

func hasSelection(req *models.SubmitInquiryRequest) bool {
	return len(req.SelectedProducts) > 0 || len(req.Products) > 0 || req.ProductID != ""
}

func selectionsComplete(req *models.SubmitInquiryRequest) bool {
	for _, p := range req.SelectedProducts {
		if p.FruitName == "" || p.Size == "" || p.Quantity == "" {
			return false
		}
	}
	for _, p := range req.Products {
		if p.FruitName == "" || p.Size == "" || p.Quantity == "" {
			return false
		}
	}
	if len(req.SelectedProducts) == 0 && len(req.Products) == 0 {
		// Single-product path: the legacy triple must be filled in.
		if req.FruitName == "" || req.Size == "" || req.Quantity == "" {
			return false
		}
	}
	return true
}

// buildInquiry constructs the outbound record once, sanitizing free-text
// fields. The result is never mutated after this point (the notified flags
// are updated in the store, not on the payload).
func buildInquiry(req *models.SubmitInquiryRequest) *models.Inquiry {
	inquiry := &models.Inquiry{
		Name:         utils.SanitizeInput(req.Name),
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		City:         utils.SanitizeInput(req.City),
		Message:      utils.SanitizeInput(req.Message),
		ProductID:    req.ProductID,
		ProductTitle: req.ProductTitle,
		FruitName:    utils.SanitizeInput(req.FruitName),
		Size:         utils.SanitizeInput(req.Size),
		Quantity:     utils.SanitizeInput(req.Quantity),
		Status:       models.InquiryStatusNew,
	}

	if len(req.SelectedProducts) > 0 {
		inquiry.SelectedProducts = make([]models.ProductSelection, 0, len(req.SelectedProducts))
		for _, p := range req.SelectedProducts {
			inquiry.SelectedProducts = append(inquiry.SelectedProducts, models.ProductSelection{
				ProductID:    p.ProductID,
				ProductTitle: utils.SanitizeInput(p.ProductTitle),
				Category:     utils.SanitizeInput(p.Category),
				FruitName:    utils.SanitizeInput(p.FruitName),
				Size:         utils.SanitizeInput(p.Size),
				Quantity:     utils.SanitizeInput(p.Quantity),
				Price:        p.Price,
			})
		}
	}

	if len(req.Products) > 0 {
		inquiry.Products = make([]models.ProductInquiryItem, 0, len(req.Products))
		for _, p := range req.Products {
			inquiry.Products = append(inquiry.Products, models.ProductInquiryItem{
				ProductID:    p.ProductID,
				ProductTitle: utils.SanitizeInput(p.ProductTitle),
				FruitName:    utils.SanitizeInput(p.FruitName),
				Size:         utils.SanitizeInput(p.Size),
				Quantity:     utils.SanitizeInput(p.Quantity),
			})
		}
	}

	return inquiry
}

// SubmitFromCart converts a session cart into the inquiry payload and runs
// the same pipeline. The caller clears the cart only after a committed write.
func (s *InquiryService) SubmitFromCart(ctx context.Context, contact *models.SubmitCartRequest, selections []models.ProductSelection) (*models.SubmitInquiryResponse, error) {
	req := &models.SubmitInquiryRequest{
		Name:             contact.Name,
		Email:            contact.Email,
		Phone:            contact.Phone,
		City:             contact.City,
		Message:          contact.Message,
		SelectedProducts: selections,
	}

	if len(selections) > 0 {
		// Legacy single-product fields mirror the first selection.
		req.ProductID = selections[0].ProductID
		req.ProductTitle = selections[0].ProductTitle
		req.FruitName = selections[0].FruitName
		req.Size = selections[0].Size
		req.Quantity = selections[0].Quantity
	}

	return s.Submit(ctx, req)
}

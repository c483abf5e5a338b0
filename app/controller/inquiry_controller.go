package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

// InquiryController handles HTTP requests for product inquiries
type InquiryController struct {
	service    *service.InquiryService
	repository repository.InquiryRepositoryInterface
}

// NewInquiryController creates a new InquiryController
func NewInquiryController(svc *service.InquiryService, repo repository.InquiryRepositoryInterface) *InquiryController {
	return &InquiryController{
		service:    svc,
		repository: repo,
	}
}

// SubmitInquiry handles POST /api/inquiries
// Returns 201 on success, 400 on validation failure, 503 when the store
// is unreachable and 500 on any other failure
func (c *InquiryController) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SubmitInquiry: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ SubmitInquiry: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmitInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ SubmitInquiry: Failed to decode request body: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()
	response, err := c.service.Submit(ctx, &req)
	if err != nil {
		c.writeSubmitError(w, err)
		return
	}

	log.Printf("✅ SubmitInquiry: Inquiry %s stored (emailSent=%v)", response.ID, response.EmailSent)

	writeJSON(w, http.StatusCreated, response)
}

func (c *InquiryController) writeSubmitError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		log.Printf("❌ SubmitInquiry: Validation failed: %v", validationErr)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
		return
	}

	if errors.Is(err, repository.ErrStoreUnavailable) {
		log.Printf("❌ SubmitInquiry: Store unavailable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Service temporarily unavailable"})
		return
	}

	log.Printf("❌ SubmitInquiry: Error submitting inquiry: %v", err)
	writeJSON(w, http.StatusInternalServerError, models.InquiryErrorResponse{
		Error:   "Failed to submit inquiry",
		Details: err.Error(),
		Code:    "INTERNAL_ERROR",
	})
}

// ListInquiries handles GET /admin/inquiries
// Returns all inquiries, newest first
func (c *InquiryController) ListInquiries(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListInquiries: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListInquiries: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	inquiries, err := c.repository.List(ctx)
	if err != nil {
		log.Printf("❌ ListInquiries: Error listing inquiries: %v", err)
		http.Error(w, "Failed to list inquiries", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListInquiries: Returning %d inquiries", len(inquiries))

	writeJSON(w, http.StatusOK, models.InquiryListResponse{Inquiries: inquiries})
}

// UpdateInquiryStatus handles PATCH /admin/inquiries/{id}/status
func (c *InquiryController) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateInquiryStatus: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPatch {
		log.Printf("❌ UpdateInquiryStatus: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	inquiryID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/inquiries/"), "/status")
	if inquiryID == "" || strings.Contains(inquiryID, "/") {
		http.Error(w, "Invalid inquiry id", http.StatusBadRequest)
		return
	}

	var req models.UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateInquiryStatus: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	switch req.Status {
	case models.InquiryStatusNew, models.InquiryStatusContacted, models.InquiryStatusResolved:
	default:
		log.Printf("❌ UpdateInquiryStatus: Invalid status: %s", req.Status)
		http.Error(w, fmt.Sprintf("Invalid status: %s", req.Status), http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	if err := c.repository.UpdateStatus(ctx, inquiryID, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️ UpdateInquiryStatus: Inquiry not found: %s", inquiryID)
			http.Error(w, "Inquiry not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ UpdateInquiryStatus: Error updating status: %v", err)
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ UpdateInquiryStatus: Inquiry %s marked %s", inquiryID, req.Status)

	writeJSON(w, http.StatusOK, map[string]string{"id": inquiryID, "status": req.Status})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

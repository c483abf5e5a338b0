package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

type stubInquiryRepo struct {
	pingErr   error
	insertErr error
	listErr   error
	updateErr error
	inquiries []models.Inquiry
	updated   map[string]string
}

func (s *stubInquiryRepo) Insert(ctx context.Context, inquiry *models.Inquiry) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	return "inq-1", nil
}

func (s *stubInquiryRepo) List(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries, s.listErr
}

func (s *stubInquiryRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updated == nil {
		s.updated = map[string]string{}
	}
	s.updated[id] = status
	return nil
}

func (s *stubInquiryRepo) MarkEmailNotified(ctx context.Context, id string) error {
	return nil
}

func (s *stubInquiryRepo) Ping(ctx context.Context) error {
	return s.pingErr
}

type stubMailer struct {
	err error
}

func (s *stubMailer) SendInquiryEmail(ctx context.Context, inquiry *models.Inquiry) error {
	return s.err
}

func newInquiryController(repo *stubInquiryRepo, mailer *stubMailer) *InquiryController {
	svc := service.NewInquiryService(repo, mailer)
	return NewInquiryController(svc, repo)
}

func validSubmitBody() string {
	return `{
		"name": "Ravi",
		"email": "ravi@example.com",
		"phone": "9876543210",
		"city": "Nashik",
		"productId": "p1",
		"productTitle": "Apple Foam Net",
		"fruitName": "Apple",
		"size": "40x80x180 mm",
		"quantity": "5000"
	}`
}

func TestSubmitInquirySuccess(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(validSubmitBody()))
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.SubmitInquiryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "inq-1", resp.ID)
	require.True(t, resp.EmailSent)
}

func TestSubmitInquiryEmailFailureStillCreated(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{}, &stubMailer{err: errors.New("smtp down")})

	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(validSubmitBody()))
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.SubmitInquiryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.False(t, resp.EmailSent)
}

func TestSubmitInquiryValidationIs400(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{}, &stubMailer{})

	body := strings.Replace(validSubmitBody(), "ravi@example.com", "not-an-email", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Please enter a valid email address", resp["error"])
}

func TestSubmitInquiryStoreDownIs503(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{pingErr: repository.ErrStoreUnavailable}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(validSubmitBody()))
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Service temporarily unavailable", resp["error"])
}

func TestSubmitInquiryInsertFailureIs500(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{insertErr: errors.New("duplicate key")}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(validSubmitBody()))
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.InquiryErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Failed to submit inquiry", resp.Error)
	require.Equal(t, "INTERNAL_ERROR", resp.Code)
	require.Contains(t, resp.Details, "duplicate key")
}

func TestSubmitInquiryRejectsGet(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{}, &stubMailer{})

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	rec := httptest.NewRecorder()
	ctrl.SubmitInquiry(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListInquiries(t *testing.T) {
	repo := &stubInquiryRepo{inquiries: []models.Inquiry{
		{ID: "inq-2", Name: "Asha", Status: models.InquiryStatusNew},
		{ID: "inq-1", Name: "Ravi", Status: models.InquiryStatusContacted},
	}}
	ctrl := newInquiryController(repo, &stubMailer{})

	req := httptest.NewRequest(http.MethodGet, "/admin/inquiries", nil)
	rec := httptest.NewRecorder()
	ctrl.ListInquiries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.InquiryListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Inquiries, 2)
	require.Equal(t, "inq-2", resp.Inquiries[0].ID)
}

func TestUpdateInquiryStatus(t *testing.T) {
	repo := &stubInquiryRepo{}
	ctrl := newInquiryController(repo, &stubMailer{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/inquiries/inq-1/status", strings.NewReader(`{"status":"contacted"}`))
	rec := httptest.NewRecorder()
	ctrl.UpdateInquiryStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "contacted", repo.updated["inq-1"])
}

func TestUpdateInquiryStatusRejectsUnknownStatus(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/inquiries/inq-1/status", strings.NewReader(`{"status":"closed"}`))
	rec := httptest.NewRecorder()
	ctrl.UpdateInquiryStatus(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateInquiryStatusNotFound(t *testing.T) {
	ctrl := newInquiryController(&stubInquiryRepo{updateErr: repository.ErrNotFound}, &stubMailer{})

	req := httptest.NewRequest(http.MethodPatch, "/admin/inquiries/missing/status", strings.NewReader(`{"status":"resolved"}`))
	rec := httptest.NewRecorder()
	ctrl.UpdateInquiryStatus(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

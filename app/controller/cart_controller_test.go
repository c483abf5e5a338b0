package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kisanagro-backend/cart"
	"kisanagro-backend/models"
	"kisanagro-backend/repository"
	"kisanagro-backend/service"
)

type stubCartRepo struct {
	carts   map[string]*cart.Cart
	deleted []string
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: map[string]*cart.Cart{}}
}

func (s *stubCartRepo) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *stubCartRepo) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	s.carts[sessionID] = c
	return nil
}

func (s *stubCartRepo) Delete(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

type stubProductRepo struct {
	products map[string]*models.Product
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return nil, repository.ErrNotFound
}

func (s *stubProductRepo) List(ctx context.Context, category string, featuredOnly bool) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) error { return nil }
func (s *stubProductRepo) Delete(ctx context.Context, id string) error               { return nil }
func (s *stubProductRepo) AppendImages(ctx context.Context, id string, images []string) error {
	return nil
}

func newCartFixture() (*CartController, *stubCartRepo, *stubInquiryRepo) {
	carts := newStubCartRepo()
	products := &stubProductRepo{products: map[string]*models.Product{
		"p1": {
			ID:       "p1",
			Title:    "Apple Foam Net",
			Category: "Foam Nets",
			SizeOptions: []models.SizeOption{
				{Size: "40x80x180 mm", Fruits: "Apple", Price: "2.50"},
			},
		},
	}}
	inquiries := &stubInquiryRepo{}
	svc := service.NewInquiryService(inquiries, &stubMailer{})
	return NewCartController(carts, products, svc), carts, inquiries
}

// addItem posts one selection and returns the issued session cookie
func addItem(t *testing.T, ctrl *CartController, cookie *http.Cookie, body string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ctrl.AddItem(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == cartSessionCookie {
			return rec, c
		}
	}
	return rec, cookie
}

func TestAddItemIssuesSessionAndResolvesProduct(t *testing.T) {
	ctrl, carts, _ := newCartFixture()

	rec, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100,"pricePerUnit":2.5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)

	saved := carts.carts[cookie.Value]
	require.NotNil(t, saved)
	require.Len(t, saved.Products, 1)
	require.Equal(t, "Apple Foam Net", saved.Products[0].ProductTitle)
	require.Equal(t, "Foam Nets", saved.Products[0].Category)
	require.Equal(t, "Apple", saved.Products[0].SelectedSizes[0].FruitName)
	require.Equal(t, "pcs", saved.Products[0].SelectedSizes[0].Unit)
	require.Equal(t, 100, saved.TotalItems())
}

func TestAddItemMergesSameSize(t *testing.T) {
	ctrl, carts, _ := newCartFixture()

	_, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100}`)
	rec, _ := addItem(t, ctrl, cookie, `{"productId":"p1","size":"40x80x180 mm","quantity":50}`)

	require.Equal(t, http.StatusOK, rec.Code)
	saved := carts.carts[cookie.Value]
	require.Len(t, saved.Products, 1)
	require.Len(t, saved.Products[0].SelectedSizes, 1)
	require.Equal(t, 150, saved.Products[0].SelectedSizes[0].Quantity)
}

func TestAddItemUnknownProductIs404(t *testing.T) {
	ctrl, _, _ := newCartFixture()

	rec, _ := addItem(t, ctrl, nil, `{"productId":"missing","size":"40x80x180 mm","quantity":10}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	ctrl, _, _ := newCartFixture()

	rec, _ := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":0}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItemBadSizeIndexIs400(t *testing.T) {
	ctrl, _, _ := newCartFixture()

	_, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items", strings.NewReader(`{"productId":"p1","sizeIndex":5,"quantity":10}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	ctrl.UpdateItem(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItemUnknownProductIs404(t *testing.T) {
	ctrl, _, _ := newCartFixture()

	_, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items", strings.NewReader(`{"productId":"missing","sizeIndex":0,"quantity":10}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	ctrl.UpdateItem(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCartWithoutSessionReturnsEmpty(t *testing.T) {
	ctrl, _, _ := newCartFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var c cart.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	require.Equal(t, 0, c.TotalItems())
}

func TestSubmitCartStoresInquiryAndDiscardsCart(t *testing.T) {
	ctrl, carts, _ := newCartFixture()

	_, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100}`)

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"9876543210","city":"Nashik","message":"Bulk pricing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit", strings.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	ctrl.SubmitCart(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.SubmitInquiryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "inq-1", resp.ID)

	require.Equal(t, []string{cookie.Value}, carts.deleted)
	require.NotContains(t, carts.carts, cookie.Value)
}

func TestSubmitCartEmptyIs400AndKeepsNothing(t *testing.T) {
	ctrl, carts, _ := newCartFixture()

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"9876543210","city":"Nashik"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.SubmitCart(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "Please select at least one product", resp["error"])
	require.Empty(t, carts.deleted)
}

func TestSubmitCartStoreDownKeepsCart(t *testing.T) {
	carts := newStubCartRepo()
	products := &stubProductRepo{products: map[string]*models.Product{
		"p1": {
			ID:       "p1",
			Title:    "Apple Foam Net",
			Category: "Foam Nets",
			SizeOptions: []models.SizeOption{
				{Size: "40x80x180 mm", Fruits: "Apple", Price: "2.50"},
			},
		},
	}}
	inquiries := &stubInquiryRepo{pingErr: repository.ErrStoreUnavailable}
	ctrl := NewCartController(carts, products, service.NewInquiryService(inquiries, &stubMailer{}))

	_, cookie := addItem(t, ctrl, nil, `{"productId":"p1","size":"40x80x180 mm","quantity":100}`)

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"9876543210","city":"Nashik"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/submit", strings.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	ctrl.SubmitCart(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, carts.carts, cookie.Value)
	require.Empty(t, carts.deleted)
}

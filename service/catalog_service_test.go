package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"kisanagro-backend/models"
	"kisanagro-backend/repository"
)

type fakeProductRepo struct {
	products []models.Product
	listErr  error
	appended map[string][]string
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) List(ctx context.Context, category string, featuredOnly bool) ([]models.Product, error) {
	return f.products, f.listErr
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeProductRepo) AppendImages(ctx context.Context, id string, images []string) error {
	if f.appended == nil {
		f.appended = map[string][]string{}
	}
	f.appended[id] = append(f.appended[id], images...)
	return nil
}

func TestRenderCatalogHTML(t *testing.T) {
	repo := &fakeProductRepo{products: []models.Product{
		{
			ID:          "p1",
			Title:       "Apple Foam Net",
			Category:    "Foam Nets",
			Description: "Protective foam net for apples",
			Images:      []string{"data:image/jpeg;base64,AAAA"},
			PriceRange:  &models.PriceRange{Min: 2, Max: 5},
			MinQuantity: "5000 pcs",
			SizeOptions: []models.SizeOption{
				{Size: "40x80x180 mm", Fruits: "Apple", Price: "2.50"},
			},
		},
		{
			ID:          "p2",
			Title:       "Grape Cover",
			Category:    "Covers",
			Description: "UV stabilized cover",
		},
	}}

	svc, err := NewCatalogService(repo, "http://localhost:8080")
	require.NoError(t, err)

	html, err := svc.RenderCatalogHTML(context.Background())
	require.NoError(t, err)

	require.Contains(t, html, "KisanAgro Product Catalog")
	require.Contains(t, html, "Apple Foam Net")
	require.Contains(t, html, "Grape Cover")
	require.Contains(t, html, "data:image/jpeg;base64,AAAA")
	require.Contains(t, html, "₹2 - ₹5")
	require.Contains(t, html, "Minimum order: 5000 pcs")
	require.Contains(t, html, "40x80x180 mm")
}

func TestRenderCatalogHTMLTruncatesDescriptions(t *testing.T) {
	long := make([]rune, 400)
	for i := range long {
		long[i] = 'x'
	}
	repo := &fakeProductRepo{products: []models.Product{
		{ID: "p1", Title: "Apple Foam Net", Category: "Foam Nets", Description: string(long)},
	}}

	svc, err := NewCatalogService(repo, "http://localhost:8080")
	require.NoError(t, err)

	html, err := svc.RenderCatalogHTML(context.Background())
	require.NoError(t, err)

	require.NotContains(t, html, string(long))
	require.Contains(t, html, "...")
}

func TestRenderCatalogHTMLPropagatesListError(t *testing.T) {
	repo := &fakeProductRepo{listErr: repository.ErrStoreUnavailable}

	svc, err := NewCatalogService(repo, "http://localhost:8080")
	require.NoError(t, err)

	_, err = svc.RenderCatalogHTML(context.Background())
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

package service

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kisanagro-backend/models"
)

func newTestMailService(t *testing.T) *MailService {
	t.Helper()
	tmpl, err := template.New("inquiryEmail").Parse(inquiryEmailTemplate)
	require.NoError(t, err)
	return &MailService{
		from:       "noreply@kisanagro.example",
		adminEmail: "sales@kisanagro.example",
		tmpl:       tmpl,
	}
}

func TestRenderHTMLSelectedProducts(t *testing.T) {
	m := newTestMailService(t)

	html, err := m.renderHTML(&models.Inquiry{
		Name:  "Ravi",
		Email: "ravi@example.com",
		Phone: "9876543210",
		City:  "Nashik",
		SelectedProducts: []models.ProductSelection{
			{ProductTitle: "Apple Foam Net", Category: "Foam Nets", FruitName: "Apple", Size: "40x80x180 mm", Quantity: "100 pcs", Price: "2.50"},
			{ProductTitle: "Pomegranate Net", FruitName: "Pomegranate", Size: "M", Quantity: "50 pcs"},
		},
		Message: "Need bulk pricing",
	})
	require.NoError(t, err)

	require.Contains(t, html, "Ravi")
	require.Contains(t, html, "mailto:ravi@example.com")
	require.Contains(t, html, "Product Details (2 items)")
	require.Contains(t, html, "Apple Foam Net")
	require.Contains(t, html, "₹2.50")
	require.Contains(t, html, "Need bulk pricing")
	// The second selection has no price snapshot, only one price line renders
	require.Equal(t, 1, strings.Count(html, "💰 Price:"))
}

func TestRenderHTMLSingleProductFallback(t *testing.T) {
	m := newTestMailService(t)

	html, err := m.renderHTML(&models.Inquiry{
		Name:         "Asha",
		Email:        "asha@example.com",
		Phone:        "9123456780",
		City:         "Pune",
		ProductTitle: "Grape Cover",
		FruitName:    "Grapes",
		Size:         "L",
		Quantity:     "2000",
	})
	require.NoError(t, err)

	require.Contains(t, html, "Grape Cover")
	require.Contains(t, html, "Grapes")
	require.NotContains(t, html, "Product Details (")
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	m := newTestMailService(t)

	html, err := m.renderHTML(&models.Inquiry{
		Name:    "Ravi & Sons",
		Email:   "ravi@example.com",
		Phone:   "9876543210",
		City:    "Nashik",
		Message: `"quoted" <b>text</b>`,
	})
	require.NoError(t, err)

	require.Contains(t, html, "Ravi &amp; Sons")
	require.NotContains(t, html, "<b>text</b>")
}

func TestSubjectFor(t *testing.T) {
	selections := []models.ProductSelection{{ProductTitle: "A"}, {ProductTitle: "B"}}

	require.Equal(t, "🔔 New Inquiry from Ravi - 2 Products",
		subjectFor(&models.Inquiry{Name: "Ravi", SelectedProducts: selections}))
	require.Equal(t, "🔔 New Inquiry from Ravi - 1 Products",
		subjectFor(&models.Inquiry{Name: "Ravi", Products: []models.ProductInquiryItem{{ProductTitle: "A"}}}))
	require.Equal(t, "🔔 New Inquiry from Ravi - Apple Foam Net",
		subjectFor(&models.Inquiry{Name: "Ravi", ProductTitle: "Apple Foam Net"}))
	require.Equal(t, "🔔 New Inquiry from Ravi",
		subjectFor(&models.Inquiry{Name: "Ravi"}))
}

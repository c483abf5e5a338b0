package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"kisanagro-backend/config"
	"kisanagro-backend/models"
)

// MailService relays a stored inquiry to the operator address over SMTP.
// Implements MailServiceInterface.
type MailService struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
	tmpl       *template.Template
}

// NewMailService creates a MailService from the SMTP configuration.
// Returns an error when the credentials or the operator address are missing,
// so a misconfigured deploy fails at startup instead of at the first inquiry.
func NewMailService(cfg *config.Config) (*MailService, error) {
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP credentials missing in environment variables")
	}
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL environment variable is not set")
	}

	tmpl, err := template.New("inquiryEmail").Parse(inquiryEmailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inquiry email template: %w", err)
	}

	return &MailService{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:       cfg.SMTPUser,
		adminEmail: cfg.AdminEmail,
		tmpl:       tmpl,
	}, nil
}

// Ensure MailService implements MailServiceInterface
var _ MailServiceInterface = (*MailService)(nil)

type inquiryEmailData struct {
	Inquiry    *models.Inquiry
	ReceivedAt string
}

// SendInquiryEmail formats and sends the operator notification for one inquiry
func (m *MailService) SendInquiryEmail(ctx context.Context, inquiry *models.Inquiry) error {
	html, err := m.renderHTML(inquiry)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "KisanAgro Inquiry")
	msg.SetHeader("To", m.adminEmail)
	msg.SetHeader("Reply-To", inquiry.Email)
	msg.SetHeader("Subject", subjectFor(inquiry))
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send inquiry email: %w", err)
	}

	log.Printf("✅ Inquiry notification email sent to %s", m.adminEmail)
	return nil
}

func (m *MailService) renderHTML(inquiry *models.Inquiry) (string, error) {
	data := inquiryEmailData{
		Inquiry:    inquiry,
		ReceivedAt: time.Now().Format("Monday, 2 January 2006, 3:04 PM"),
	}

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render inquiry email: %w", err)
	}
	return buf.String(), nil
}

func subjectFor(inquiry *models.Inquiry) string {
	switch {
	case len(inquiry.SelectedProducts) > 0:
		return fmt.Sprintf("🔔 New Inquiry from %s - %d Products", inquiry.Name, len(inquiry.SelectedProducts))
	case len(inquiry.Products) > 0:
		return fmt.Sprintf("🔔 New Inquiry from %s - %d Products", inquiry.Name, len(inquiry.Products))
	case inquiry.ProductTitle != "":
		return fmt.Sprintf("🔔 New Inquiry from %s - %s", inquiry.Name, inquiry.ProductTitle)
	default:
		return fmt.Sprintf("🔔 New Inquiry from %s", inquiry.Name)
	}
}

// HTML template. html/template escaping covers the characters SanitizeInput
// deliberately leaves alone (quotes, ampersands).
const inquiryEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 20px; background-color: #f3f4f6; font-family: Arial, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; overflow: hidden;">
    <div style="background: #16a34a; padding: 30px; text-align: center;">
      <h1 style="margin: 0; color: white; font-size: 28px;">📧 New Customer Inquiry</h1>
      <p style="margin: 10px 0 0 0; color: #dcfce7; font-size: 14px;">KisanAgro - Inquiry Management</p>
    </div>

    <div style="padding: 30px;">
      <div style="background: #f0fdf4; padding: 20px; border-radius: 10px; margin-bottom: 20px; border-left: 4px solid #16a34a;">
        <h2 style="margin: 0 0 15px 0; color: #15803d; font-size: 18px;">👤 Customer Information</h2>
        <table style="width: 100%; border-collapse: collapse;">
          <tr><td style="padding: 8px 0; font-weight: bold; width: 120px;">Name:</td><td style="padding: 8px 0;">{{.Inquiry.Name}}</td></tr>
          <tr><td style="padding: 8px 0; font-weight: bold;">Email:</td><td style="padding: 8px 0;"><a href="mailto:{{.Inquiry.Email}}">{{.Inquiry.Email}}</a></td></tr>
          <tr><td style="padding: 8px 0; font-weight: bold;">Phone:</td><td style="padding: 8px 0;"><a href="tel:{{.Inquiry.Phone}}">{{.Inquiry.Phone}}</a></td></tr>
          <tr><td style="padding: 8px 0; font-weight: bold;">City:</td><td style="padding: 8px 0;">{{.Inquiry.City}}</td></tr>
        </table>
      </div>

      {{if .Inquiry.SelectedProducts}}
      <div style="margin: 15px 0;">
        <h3 style="margin: 0 0 15px 0; color: #92400e;">🛍️ Product Details ({{len .Inquiry.SelectedProducts}} items)</h3>
        {{range $i, $p := .Inquiry.SelectedProducts}}
        <div style="background: #fef3c7; padding: 15px; border-radius: 8px; margin: 10px 0; border-left: 4px solid #f59e0b;">
          <p style="margin: 5px 0;"><strong>Product:</strong> {{$p.ProductTitle}}</p>
          {{if $p.Category}}<p style="margin: 5px 0;"><strong>📂 Category:</strong> {{$p.Category}}</p>{{end}}
          <p style="margin: 5px 0;"><strong>🍎 Fruit Type:</strong> {{$p.FruitName}}</p>
          <p style="margin: 5px 0;"><strong>📏 Size Required:</strong> {{$p.Size}}</p>
          <p style="margin: 5px 0;"><strong>📦 Quantity:</strong> {{$p.Quantity}}</p>
          {{if $p.Price}}<p style="margin: 5px 0;"><strong>💰 Price:</strong> ₹{{$p.Price}}</p>{{end}}
        </div>
        {{end}}
      </div>
      {{else if .Inquiry.Products}}
      <div style="margin: 15px 0;">
        <h3 style="margin: 0 0 15px 0; color: #92400e;">🛍️ Product Details ({{len .Inquiry.Products}} items)</h3>
        {{range $i, $p := .Inquiry.Products}}
        <div style="background: #fef3c7; padding: 15px; border-radius: 8px; margin: 10px 0; border-left: 4px solid #f59e0b;">
          <p style="margin: 5px 0;"><strong>Product:</strong> {{$p.ProductTitle}}</p>
          <p style="margin: 5px 0;"><strong>🍎 Fruit Type:</strong> {{$p.FruitName}}</p>
          <p style="margin: 5px 0;"><strong>📏 Size Required:</strong> {{$p.Size}}</p>
          <p style="margin: 5px 0;"><strong>📦 Quantity:</strong> {{$p.Quantity}}</p>
        </div>
        {{end}}
      </div>
      {{else if .Inquiry.ProductTitle}}
      <div style="background: #fef3c7; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid #f59e0b;">
        <h3 style="margin: 0 0 10px 0; color: #92400e;">🛍️ Product Details</h3>
        <p style="margin: 5px 0;"><strong>Product:</strong> {{.Inquiry.ProductTitle}}</p>
        {{if .Inquiry.FruitName}}<p style="margin: 5px 0;"><strong>🍎 Fruit Type:</strong> {{.Inquiry.FruitName}}</p>{{end}}
        {{if .Inquiry.Size}}<p style="margin: 5px 0;"><strong>📏 Size Required:</strong> {{.Inquiry.Size}}</p>{{end}}
        {{if .Inquiry.Quantity}}<p style="margin: 5px 0;"><strong>📦 Quantity:</strong> {{.Inquiry.Quantity}}</p>{{end}}
      </div>
      {{end}}

      {{if .Inquiry.Message}}
      <div style="background: #f9fafb; padding: 20px; border-radius: 10px; margin-bottom: 20px; border-left: 4px solid #6b7280;">
        <h3 style="margin: 0 0 10px 0; font-size: 16px;">💬 Customer Message</h3>
        <p style="margin: 0; line-height: 1.6; white-space: pre-wrap;">{{.Inquiry.Message}}</p>
      </div>
      {{end}}

      <div style="padding: 15px; background: #eff6ff; border-radius: 8px; text-align: center;">
        <p style="margin: 0; color: #1e40af; font-size: 14px;"><strong>⏰ Received:</strong> {{.ReceivedAt}}</p>
      </div>
    </div>

    <div style="background: #f3f4f6; padding: 20px; text-align: center; border-top: 1px solid #e5e7eb;">
      <p style="margin: 0; color: #6b7280; font-size: 12px;">This is an automated email from the KisanAgro Inquiry System</p>
      <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 12px;">Please respond to the customer as soon as possible</p>
    </div>
  </div>
</body>
</html>
`

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/AUXLE/clavedeoroBackend/internal/config"
	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// HTML template shared by both contact-form notification emails.
const contactEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { border: 1px solid #e9ecef; border-radius: 8px; padding: 20px; max-width: 600px; }
  h2 { margin-top: 0; color: #1d3557; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
  strong { color: #000; }
  .footer { font-size: 12px; color: #6c757d; margin-top: 20px; }
</style>
</head>
<body>
  <div class="container">
    <h2>Contact form submission</h2>
    <ul>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Phone:</strong> %s %s</li>
      <li><strong>Email:</strong> %s</li>
      <li><strong>Subject:</strong> %s</li>
      <li><strong>Message:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
    <div class="footer">Clave de Oro Realty</div>
  </div>
</body>
</html>`

// MailClient is the slice of the SendGrid client the notifier needs; tests
// substitute a counting fake.
type MailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type ContactService interface {
	Submit(ctx context.Context, req dtos.ContactFormRequest) error
}

type contactService struct {
	cfg    *config.Config
	client MailClient
}

func NewContactService(cfg *config.Config) ContactService {
	return &contactService{
		cfg:    cfg,
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
	}
}

// NewContactServiceWithClient exists for tests.
func NewContactServiceWithClient(cfg *config.Config, client MailClient) ContactService {
	return &contactService{cfg: cfg, client: client}
}

// Submit sends two emails with an identical formatted body: one back to the
// submitter, one to the operator inbox. The two sends are not transactional;
// a partial failure surfaces as a generic delivery error.
func (s *contactService) Submit(_ context.Context, req dtos.ContactFormRequest) error {
	subject := req.Subject
	if subject == "" {
		subject = "New contact form submission"
	}

	plain := fmt.Sprintf(
		"Contact form submission\n\nName: %s\nPhone: %s %s\nEmail: %s\nSubject: %s\nMessage: %s",
		req.Name, req.CountryCode, req.Phone, req.Email, subject, req.Message,
	)
	html := fmt.Sprintf(
		contactEmailHTML,
		req.Name, req.CountryCode, req.Phone, req.Email, subject, req.Message,
		time.Now().UTC().Format(time.RFC1123Z),
	)

	if err := s.send(req.Email, subject, plain, html); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDelivery, err)
	}
	if err := s.send(s.cfg.ContactInbox, subject, plain, html); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDelivery, err)
	}
	return nil
}

func (s *contactService) send(toAddr, subject, plain, html string) error {
	from := mail.NewEmail("Clave de Oro Realty", s.cfg.SendGridFromEmail)
	to := mail.NewEmail("", toAddr)

	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	if s.cfg.LDFlag_SendGridSandboxMode {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		msg.SetMailSettings(settings)
	}

	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp != nil && resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

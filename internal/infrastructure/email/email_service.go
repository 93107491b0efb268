package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	config "github.com/foliohost/portfolio-saas/configs"
	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sender is the subset of the SendGrid client the service uses.
type Sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService sends transactional mail through SendGrid
type EmailService struct {
	config    *config.EmailConfig
	logger    *logrus.Logger
	client    Sender
	templates *template.Template
}

// NewEmailService builds the service with a real SendGrid client.
func NewEmailService(cfg *config.EmailConfig, logger *logrus.Logger) (*EmailService, error) {
	return NewEmailServiceWithSender(cfg, sendgrid.NewSendClient(cfg.SendGridAPIKey), logger)
}

func NewEmailServiceWithSender(cfg *config.EmailConfig, client Sender, logger *logrus.Logger) (*EmailService, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return &EmailService{
		config:    cfg,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err == nil && response != nil && response.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	if err != nil {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{
				"subject": subject,
				"error":   err,
			}).Error("Failed to send email")
		}
		return fmt.Errorf("failed to send email: %w", err)
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"subject":     subject,
			"status_code": response.StatusCode,
		}).Info("Email sent successfully")
	}
	return nil
}

func (e *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// ResumeCodeEmailData holds data for the resume download code template
type ResumeCodeEmailData struct {
	CompanyName      string
	PortfolioName    string
	Code             string
	ExpiresInMinutes int
}

// SendResumeVerificationCode mails a download code for portfolioName's resume.
func (e *EmailService) SendResumeVerificationCode(ctx context.Context, email, code, portfolioName string) error {
	data := ResumeCodeEmailData{
		CompanyName:      e.config.CompanyName,
		PortfolioName:    portfolioName,
		Code:             code,
		ExpiresInMinutes: int(verification.CodeTTL.Minutes()),
	}

	htmlContent, err := e.renderTemplate("resume_code.html", data)
	if err != nil {
		return fmt.Errorf("failed to render resume code template: %w", err)
	}

	subject := fmt.Sprintf("Your resume download code for %s", portfolioName)
	return e.sendEmail(email, subject, htmlContent)
}

var _ ports.EmailService = (*EmailService)(nil)

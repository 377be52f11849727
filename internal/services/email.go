package services

import (
	"context"
	"fmt"
	"log"

	"marketdirectory/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendSubscriberWelcome sends the newsletter welcome email using the "subscriber_welcome" template.
func (s *emailService) SendSubscriberWelcome(ctx context.Context, data *domain.SubscriberWelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("subscriber welcome data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("subscriber_welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render subscriber_welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Newsletter welcome sent to %s", data.Email)
	return nil
}

package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SubscriberWelcomeEmailData is the template data for the newsletter welcome mail.
type SubscriberWelcomeEmailData struct {
	Email          string
	UnsubscribeURL string
}

// EmailService renders and sends application emails.
type EmailService interface {
	SendSubscriberWelcome(ctx context.Context, data *SubscriberWelcomeEmailData) error
}

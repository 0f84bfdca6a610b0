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

// WelcomeEmailData holds data for the welcome email.
type WelcomeEmailData struct {
	Email    string
	FullName string
}

// EventAnnouncementEmailData holds data for the new-event announcement email.
type EventAnnouncementEmailData struct {
	Email       string
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Location    string
	Capacity    int
	ImageURL    string
	EventURL    string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
	SendEventAnnouncement(ctx context.Context, data *EventAnnouncementEmailData) error
}

package services

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Mailer sends admin replies to feedback submitters via the Resend API.
type Mailer struct {
	client *resend.Client
	from   string
}

// NewMailer creates a mailer with the given API key and From address.
func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendReply emails a feedback reply to the submitter. Returns the provider
// message ID.
func (m *Mailer) SendReply(to, subject, body string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	return sent.Id, nil
}

package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) SendConfirmation(ctx context.Context, email, username, baseURL, token string) error {
	safeUsername := html.EscapeString(username)
	link := strings.TrimRight(baseURL, "/") + "/api/auth/confirmed_email/" + token

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Confirm your email",
		Html: fmt.Sprintf(
			`<h1>Hello, %s!</h1><p>Please confirm your email by following the link:</p><p><a href="%s">Confirm email</a></p><p>The link is valid for 7 days.</p>`,
			safeUsername, link),
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

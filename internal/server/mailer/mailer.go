// Package mailer sends transactional email for the service.
package mailer

import "context"

// Mailer delivers the account confirmation message. Delivery failures
// are reported to the caller but never block the signup flow.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, username, baseURL, token string) error
}

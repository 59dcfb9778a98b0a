package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendShareNotification(ctx context.Context, toEmail, fromName, shareURL string) error
}

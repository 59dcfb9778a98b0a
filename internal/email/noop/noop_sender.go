package noop

import (
	"context"
	"log"

	"quotedesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs share URLs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendShareNotification(_ context.Context, toEmail, fromName, shareURL string) error {
	log.Printf("[NOOP EMAIL] Share notification from %s to %s: %s", fromName, toEmail, shareURL)
	return nil
}

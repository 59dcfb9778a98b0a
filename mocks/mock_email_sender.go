package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendShareNotification(ctx context.Context, toEmail, fromName, shareURL string) error {
	args := m.Called(ctx, toEmail, fromName, shareURL)
	return args.Error(0)
}

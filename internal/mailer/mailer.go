package mailer

import (
	"context"
	"log"

	"authbox/internal/domain"
)

// Mailer delivers verification emails; delivery and templating live behind
// this port.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email string, otp *domain.Otp) error
}

// DevConsoleMailer logs the code and link token instead of sending anything.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendVerificationEmail(_ context.Context, email string, otp *domain.Otp) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification email=%s code=%s token=%s expires_at=%s",
			email, otp.Code, otp.Token, otp.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

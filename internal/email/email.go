// Package email sends transactional mail through Resend.
package email

import (
	"fmt"

	"github.com/resend/resend-go/v2"

	"fintrack/internal/logger"
)

// Sender dispatches outbound mail.
type Sender interface {
	SendResetCode(to, code string) error
}

type resendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a Sender backed by the Resend API.
func NewResendSender(apiKey string) Sender {
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   "onboarding@resend.dev",
	}
}

// SendResetCode emails a password-reset code. Delivery failures are logged
// and not surfaced: the reset flow must not reveal delivery state to the
// caller.
func (s *resendSender) SendResetCode(to, code string) error {
	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Reset Password",
		Html:    fmt.Sprintf("<strong>Reset code: %s</strong>", code),
	})
	if err != nil {
		logger.Get().Errorw("failed to send reset code email", "error", err.Error())
	}
	return nil
}

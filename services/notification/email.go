package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"bookline/models"
	"bookline/utils"

	"go.uber.org/zap"
)

// EmailConfig carries SMTP settings. An empty Password enables mock mode:
// the message is logged instead of sent, which is how development runs.
type EmailConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// EmailNotifier sends the confirmation email over SMTP.
type EmailNotifier struct {
	cfg EmailConfig
}

func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Notify(ctx context.Context, draft models.Draft) error {
	logger := utils.GetLogger()
	if draft.ContactEmail == "" {
		return fmt.Errorf("draft has no contact email")
	}

	subject := fmt.Sprintf("Booking Confirmation - %s", draft.ServiceType)
	body := confirmationBody(draft)

	if n.cfg.Password == "" {
		logger.Info("mock email sent",
			zap.String("to", draft.ContactEmail),
			zap.String("subject", subject))
		return nil
	}

	msg := strings.Join([]string{
		"From: " + n.cfg.Sender,
		"To: " + draft.ContactEmail,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, n.cfg.Sender, []string{draft.ContactEmail}, []byte(msg))
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send confirmation email: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("confirmation email timed out: %w", ctx.Err())
	}

	logger.Info("booking confirmation email sent", zap.String("to", draft.ContactEmail))
	return nil
}

func confirmationBody(draft models.Draft) string {
	return fmt.Sprintf(`BOOKING CONFIRMED!

Your %s has been successfully booked.

CONFIRMATION NUMBER: %s

BOOKING DETAILS:
================
Service Type: %s
Date: %s
Time: %s
Duration: %d minutes
Location: Main Office - Conference Room A

Please arrive 5 minutes before your scheduled time.
Free cancellation up to 24 hours before the appointment.

This is an automated confirmation email. Please do not reply to this message.`,
		draft.ServiceType, draft.ConfirmationCode, draft.ServiceType,
		draft.Date, draft.Time, draft.DurationMinutes)
}

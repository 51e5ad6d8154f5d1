package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/config"
)

// Mailer sends guest-facing mail over SMTP. With no SMTP host configured it
// degrades to logging the would-be mail, which keeps local development free
// of mail setup.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer creates a Mailer from the SMTP config.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{from: cfg.From, logger: logger}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// SendBookingConfirmation mails the primary guest their booking details.
func (m *Mailer) SendBookingConfirmation(_ context.Context, c application.BookingConfirmation) error {
	subject := "Booking Confirmed"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking is confirmed.\n\nRoom: %s (No. %d)\nCheck-in: %s\nCheck-out: %s\nTotal: %.2f\n\nWe look forward to hosting you.\n",
		c.GuestName,
		c.RoomName,
		c.RoomNo,
		c.CheckIn.Format("2006-01-02"),
		c.CheckOut.Format("2006-01-02"),
		c.TotalAmount,
	)

	if m.dialer == nil {
		m.logger.Info("smtp not configured, skipping confirmation mail",
			zap.String("to", c.GuestEmail),
			zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", c.GuestEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}
	return nil
}

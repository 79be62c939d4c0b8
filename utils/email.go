package utils

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/bhetghat/bhetghat-server/config"
)

// Mailer sends the two transactional emails the platform needs.
type Mailer interface {
	SendVerification(to, link string) error
	SendOrderConfirmation(to, name string, attachments []string) error
}

// SMTPMailer sends mail over SMTP (gmail-style account in the default
// config). Failures are returned to the caller; there is no retry here.
type SMTPMailer struct {
	cfg config.SMTPConfig
	log *zap.SugaredLogger
}

func NewSMTPMailer(cfg config.SMTPConfig, log *zap.SugaredLogger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// SendVerification emails the confirm-registration link.
func (m *SMTPMailer) SendVerification(to, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.From, "Bhetghat"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm Your Registration")
	msg.SetBody("text/html", fmt.Sprintf(`
      <p>Click the button below to confirm your registration:</p>
      <a href="%s"
         style="display:inline-block;padding:10px 20px;background-color:#4CAF50;color:white;text-decoration:none;border-radius:5px;">
         Confirm Registration
      </a>
      <p>If you did not request this, please ignore this email.</p>
    `, link))

	if err := m.send(msg); err != nil {
		m.log.Errorw("verification email failed", "to", to, "error", err)
		return err
	}
	m.log.Infow("verification email sent", "to", to)
	return nil
}

// SendOrderConfirmation emails the order confirmation with the event files
// attached. attachments are local file paths; the set must match the
// non-null eventFile values of the ordered products.
func (m *SMTPMailer) SendOrderConfirmation(to, name string, attachments []string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.From, "Bhetghat"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Order Confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nThank you for your order. Please find the product files attached.", name))

	for _, path := range attachments {
		msg.Attach(path, gomail.Rename(filepath.Base(path)))
	}

	if err := m.send(msg); err != nil {
		m.log.Errorw("order confirmation email failed", "to", to, "error", err)
		return err
	}
	m.log.Infow("order confirmation email sent", "to", to, "attachments", len(attachments))
	return nil
}

func (m *SMTPMailer) send(msg *gomail.Message) error {
	if m.cfg.Host == "" || m.cfg.User == "" {
		return fmt.Errorf("missing required email config")
	}
	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	return dialer.DialAndSend(msg)
}

package mailer

import (
	"fmt"

	"pulse-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text email over SMTP. With no host configured every
// send is a silent no-op; callers treat delivery as best-effort either way.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// New builds a Mailer from config.
func New(cfg config.MailConfig) *Mailer {
	m := &Mailer{from: cfg.From}
	if cfg.Host == "" {
		return m
	}
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	m.enabled = true
	return m
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.enabled }

// Send delivers one message. Returns an error only for real SMTP failures;
// unconfigured mailers succeed silently.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.enabled {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s failed: %w", to, err)
	}
	return nil
}

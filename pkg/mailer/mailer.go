// Package mailer delivers storefront notification mails over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	storefront "github.com/goliatone/go-studio/components/storefront"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address; defaults to Username.
	From string
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg Config
}

// New builds an SMTP mailer.
func New(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg}, nil
}

var _ storefront.Mailer = (*SMTPMailer)(nil)

// Send delivers the message. The context is honored only up to the SMTP
// dial; net/smtp offers no mid-session cancellation.
func (m *SMTPMailer) Send(ctx context.Context, msg storefront.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mailer: recipient is required")
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	body := BuildMessage(m.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
	}
	return nil
}

// BuildMessage assembles the raw RFC 5322 message with an HTML body.
func BuildMessage(from string, msg storefront.MailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	return []byte(b.String())
}

// sanitizeHeader strips CR/LF so user-derived subjects can't inject headers.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}

// Noop discards every message. Useful in tests and local development.
type Noop struct{}

// Send drops the message.
func (Noop) Send(context.Context, storefront.MailMessage) error { return nil }

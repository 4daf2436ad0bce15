// Package notify emails the site owner when a contact message is stored.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/schema"
)

// Notifier is told about every accepted contact message.
type Notifier interface {
	Notify(ctx context.Context, msg schema.Message) error
}

// Nop drops notifications; used when SMTP is not configured.
type Nop struct{}

func (Nop) Notify(context.Context, schema.Message) error { return nil }

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends one plain-text email per message through an SMTP relay.
type Mailer struct {
	cfg  config.SMTPConfig
	send SendFunc
}

// New returns a Mailer when cfg has credentials and Nop otherwise.
func New(cfg config.SMTPConfig) Notifier {
	if !cfg.Enabled() {
		return Nop{}
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// NewMailer returns a Mailer that delivers through send.
func NewMailer(cfg config.SMTPConfig, send SendFunc) *Mailer {
	return &Mailer{cfg: cfg, send: send}
}

func (m *Mailer) Notify(ctx context.Context, msg schema.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, m.compose(msg)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func (m *Mailer) compose(msg schema.Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Received: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.CreatedAt.Format("2006-01-02 15:04 MST"), msg.Message)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + headerSafe("Portfolio Contact: "+msg.Name) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

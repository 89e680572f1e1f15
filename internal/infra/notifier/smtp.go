package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ======================================================
// SMTP notifier
// ======================================================

// SMTPNotifier delivers plain-text mail. Every error it returns is treated
// as non-fatal by the lifecycle.
type SMTPNotifier struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = cfg.User
	}
	return &SMTPNotifier{
		host:     strings.TrimSpace(cfg.Host),
		port:     strings.TrimSpace(cfg.Port),
		user:     strings.TrimSpace(cfg.User),
		password: cfg.Password,
		from:     from,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if n.host == "" || n.user == "" || n.password == "" {
		return apperr.Configuration("SMTP_USER / SMTP_APP_PASSWORD")
	}
	if to == "" {
		return apperr.Validation("to", "required")
	}

	addr := fmt.Sprintf("%s:%s", n.host, n.port)
	auth := smtp.PlainAuth("", n.user, n.password, n.host)
	msg := buildMessage(n.from, to, subject, body)

	if err := smtp.SendMail(addr, auth, n.from, []string{to}, []byte(msg)); err != nil {
		return apperr.External("notifier", err)
	}
	return nil
}

// buildMessage produces a minimal RFC 5322 message, enough for Gmail and
// most relays.
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

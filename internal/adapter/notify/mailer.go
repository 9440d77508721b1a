// Package notify provides the best-effort email/push transports injected
// into the reminder scheduler.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"todoapp/internal/config"
	"todoapp/internal/core/ports"
)

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// SendEmail delivers a multipart text+html message. Failures are logged
// and reported as false; the caller decides whether to retry.
func (m *SMTPMailer) SendEmail(_ context.Context, to, subject, text, html string) bool {
	if m.host == "" {
		zap.L().Debug("smtp not configured, dropping email", zap.String("to", to))
		return false
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := buildMessage(m.from, to, subject, text, html)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		zap.L().Warn("failed to send reminder email", zap.String("to", to), zap.Error(err))
		return false
	}
	return true
}

const mimeBoundary = "todoapp-alt"

func buildMessage(from, to, subject, text, html string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", mimeBoundary, text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", mimeBoundary, html)
	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}

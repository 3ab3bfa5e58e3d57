// Package notify sends transactional email. The coordinator treats it as
// fire-and-forget: a failed confirmation never rolls back a vote.
package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Sender is the narrow contract the coordinator consumes.
type Sender interface {
	Send(subject, recipient, body string) error
}

// LogSender writes mail to the log instead of a relay. Used in deployments
// without SMTP configured, where credentials are read off the server log.
type LogSender struct{}

func (LogSender) Send(subject, recipient, body string) error {
	slog.Info("mail (no SMTP relay configured)",
		"subject", subject, "recipient", recipient, "body", body)
	return nil
}

// SMTPSender delivers mail over SMTP with STARTTLS and plain auth.
type SMTPSender struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPSender(host string, port int, from, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, password: password}
}

func (s *SMTPSender) Send(subject, recipient, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	msg := formatMessage(s.from, recipient, subject, body)
	if err := smtp.SendMail(addr, auth, s.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}
	return nil
}

// formatMessage builds a minimal RFC 5322 plain-text message. Header values
// have CR/LF stripped so request-derived strings can't inject headers.
func formatMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + sanitizeHeader(from) + "\r\n")
	b.WriteString("To: " + sanitizeHeader(to) + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func sanitizeHeader(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	return strings.ReplaceAll(v, "\n", "")
}

// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the mail transport configuration.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Configured reports whether the transport has enough settings to send.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port > 0
}

// SMTPSender sends email through a plain SMTP relay.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a sender for the given transport configuration.
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send delivers a single HTML message.
func (s *SMTPSender) Send(_ context.Context, to, subject, html string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.config.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Pass, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendPasswordReset delivers the password-reset link.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	return s.Send(ctx, to, "Password Reset - Enoma", PasswordResetEmail(resetURL))
}

// SendPasswordChangeNotice delivers the password-change notification.
func (s *SMTPSender) SendPasswordChangeNotice(ctx context.Context, to string) error {
	return s.Send(ctx, to, "Password Changed - Enoma", PasswordChangeNotificationEmail())
}

// LogSender is used when no SMTP transport is configured: it logs instead of
// sending, so the primary operations still complete.
type LogSender struct{}

// SendPasswordReset logs that a reset email would have been sent.
func (LogSender) SendPasswordReset(_ context.Context, to, _ string) error {
	log.Printf("[mailer] SMTP not configured; skipping password reset email to %s", to)
	return nil
}

// SendPasswordChangeNotice logs that a notification would have been sent.
func (LogSender) SendPasswordChangeNotice(_ context.Context, to string) error {
	log.Printf("[mailer] SMTP not configured; skipping password change notification to %s", to)
	return nil
}

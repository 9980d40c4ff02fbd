package mailer

import (
	"context"
	"log"

	"github.com/go-monolith/mono"

	"github.com/example/enoma/modules/auth"
)

// MailerModule owns the SMTP transport configuration for the process.
type MailerModule struct {
	config SMTPConfig
	sender auth.Mailer
}

// Compile-time interface checks.
var _ mono.Module = (*MailerModule)(nil)
var _ mono.HealthCheckableModule = (*MailerModule)(nil)

// NewModule creates a new MailerModule. The sender is usable immediately
// after construction so dependent modules can take it before startup.
func NewModule(config SMTPConfig) *MailerModule {
	m := &MailerModule{config: config}
	if config.Configured() {
		m.sender = NewSMTPSender(config)
	} else {
		m.sender = LogSender{}
	}
	return m
}

// Name returns the module name.
func (m *MailerModule) Name() string {
	return "mailer"
}

// Start logs the transport state; SMTP needs no persistent connection.
func (m *MailerModule) Start(_ context.Context) error {
	if m.config.Configured() {
		log.Printf("[mailer] Module started (relay: %s:%d)", m.config.Host, m.config.Port)
	} else {
		log.Println("[mailer] Module started without SMTP transport; emails will be logged and dropped")
	}
	return nil
}

// Stop shuts down the module.
func (m *MailerModule) Stop(_ context.Context) error {
	log.Println("[mailer] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MailerModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"configured": m.config.Configured(),
		},
	}
}

// Sender returns the transactional mail sender.
func (m *MailerModule) Sender() auth.Mailer {
	return m.sender
}

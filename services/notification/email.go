package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through the firm's SMTP relay, dialing per message.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns nil when no relay is configured, which disables the channel.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Host == "" || cfg.From == "" {
		return nil
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipients %v: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(m.cfg.Port), mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email %q: %w", subject, err)
	}
	return nil
}

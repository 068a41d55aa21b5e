package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/pkg/errors"

	"summary-backend/internal/shared/telemetry"
)

// sendMailFunc matches net/smtp.SendMail; tests replace it.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers messages through an authenticated SMTP relay
// (STARTTLS is negotiated by net/smtp when the server offers it).
type SMTPSender struct {
	cfg      Config
	from     *mail.Address
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSender validates cfg and returns a sender.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "smtp config")
	}
	from, err := mail.ParseAddress(cfg.FromEmail)
	if err != nil {
		return nil, errors.Wrap(err, "invalid from email")
	}
	if cfg.FromName != "" {
		from.Name = cfg.FromName
	}
	return &SMTPSender{
		cfg:      cfg,
		from:     from,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}, nil
}

// Send composes and delivers msg in a single SMTP transaction.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to, err := ParseRecipient(msg.To)
	if err != nil {
		return err
	}
	raw, err := compose(s.from, to, msg, s.now())
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.sendMail(s.cfg.ServerAddress(), auth, s.from.Address, []string{to.Address}, raw); err != nil {
		return errors.Wrap(err, "smtp send")
	}

	telemetry.Info("mail.sent", map[string]any{
		"to_domain": domainOf(to.Address),
		"bytes":     len(raw),
	})
	return nil
}

// LogSender acknowledges every message without delivering it. It is the
// fallback when no SMTP credentials are configured.
type LogSender struct{}

// Send logs the intent and returns nil.
func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to, err := ParseRecipient(msg.To)
	if err != nil {
		return err
	}
	telemetry.Info("mail.log_only", map[string]any{
		"to_domain":  domainOf(to.Address),
		"subject":    msg.Subject,
		"body_bytes": len(msg.HTMLBody),
	})
	return nil
}

func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return ""
}

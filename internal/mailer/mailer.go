package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/pkg/errors"
)

// Message is one outbound HTML email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers a Message. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config represents the SMTP configuration for email sending.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SMTPHost) == "" {
		return errors.New("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return errors.New("SMTP port must be between 1 and 65535")
	}
	if strings.TrimSpace(c.FromEmail) == "" {
		return errors.New("from email is required")
	}
	if _, err := mail.ParseAddress(c.FromEmail); err != nil {
		return errors.Wrap(err, "invalid from email")
	}
	return nil
}

// ServerAddress returns the SMTP server address in the format "host:port".
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

// ParseRecipient accepts exactly one RFC 5322 address.
func ParseRecipient(raw string) (*mail.Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("recipient is required")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid recipient %q", raw)
	}
	return addr, nil
}

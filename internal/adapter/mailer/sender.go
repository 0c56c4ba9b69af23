// Package mailer delivers notifications over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Settings configures the SMTP relay.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender sends HTML e-mails through an SMTP relay.
type Sender struct {
	client deliverer
	from   string
	logger *slog.Logger
}

// NewSender creates an SMTP sender. Authentication is enabled when a
// username is configured.
func NewSender(s Settings, logger *slog.Logger) (*Sender, error) {
	if strings.TrimSpace(s.Host) == "" {
		return nil, fmt.Errorf("mailer: smtp host is required")
	}
	if strings.TrimSpace(s.From) == "" {
		return nil, fmt.Errorf("mailer: sender address is required")
	}

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.Timeout))
	}
	if s.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.Username),
			mail.WithPassword(s.Password),
		)
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	return newSender(client, s.From, logger), nil
}

func newSender(client deliverer, from string, logger *slog.Logger) *Sender {
	return &Sender{client: client, from: from, logger: logger}
}

// Send delivers n and reports whether the relay accepted it.
func (s *Sender) Send(ctx context.Context, n model.Notification) bool {
	msg, err := s.message(n)
	if err != nil {
		s.logger.Error("build mail", slog.String("to", n.To), slog.String("error", err.Error()))
		return false
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("send mail", slog.String("to", n.To), slog.String("error", err.Error()))
		return false
	}
	s.logger.Info("mail sent", slog.String("to", n.To), slog.String("subject", n.Subject))
	return true
}

func (s *Sender) message(n model.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextHTML, n.HTML)
	return msg, nil
}

// Discard stands in for the relay when SMTP is not configured.
type Discard struct {
	logger *slog.Logger
}

// NewDiscard creates a sender that drops every notification.
func NewDiscard(logger *slog.Logger) *Discard {
	return &Discard{logger: logger}
}

func (d *Discard) Send(ctx context.Context, n model.Notification) bool {
	d.logger.Debug("mail discarded", slog.String("to", n.To), slog.String("subject", n.Subject))
	return false
}

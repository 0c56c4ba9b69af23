package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/worker"
)

// Module exposes the notification sender to the fx graph.
var Module = fx.Provide(newMailSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailSender(p senderParams) (worker.Sender, error) {
	if p.Config.SMTPHost == "" {
		p.Logger.Warn("smtp host not configured, notifications are discarded")
		return NewDiscard(p.Logger), nil
	}
	return NewSender(Settings{
		Host:     p.Config.SMTPHost,
		Port:     p.Config.SMTPPort,
		Username: p.Config.SMTPUsername,
		Password: p.Config.SMTPPassword,
		From:     p.Config.MailFrom,
		Timeout:  p.Config.ProviderTimeout,
	}, p.Logger)
}

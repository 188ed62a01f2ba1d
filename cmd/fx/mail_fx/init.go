package mail_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/config"
	"flowstate/internal/logging"
	"flowstate/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.MailConfig) services.IMailService {
	if cfg.Host == "" {
		logging.Warn().Msg("mail.host not set, outgoing mail will only be logged")
	} else {
		logging.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("SMTP mail service configured")
	}
	return services.NewMailService(cfg)
}

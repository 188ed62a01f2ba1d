package ai_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/api/controllers"
	"flowstate/internal/config"
	"flowstate/internal/logging"
	"flowstate/internal/services"
	"flowstate/pkg/utils"
)

var Module = fx.Provide(
	ProvideChatClient,
	ProvideInsightsService,
	ProvideAIController)

// ProvideChatClient builds an OpenAI-compatible chat client. Without an API
// key or base URL the insights service answers every request as unavailable.
func ProvideChatClient(cfg config.OpenAIConfig) services.ChatCompleter {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		logging.Warn().Msg("openai provider not configured, AI chat is disabled")
	} else {
		logging.Info().Str("model", cfg.Model).Msg("Initializing chat completion client")
	}
	return utils.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
}

func ProvideInsightsService(client services.ChatCompleter, cfg config.OpenAIConfig) services.InsightsService {
	return services.NewInsightsService(client, cfg, services.DefaultBreakerSettings)
}

func ProvideAIController(insightsService services.InsightsService) *controllers.AIController {
	return controllers.NewAIController(insightsService)
}

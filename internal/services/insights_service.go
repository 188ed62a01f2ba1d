package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"

	"flowstate/internal/config"
	"flowstate/internal/logging"
	"flowstate/internal/metrics"
	"flowstate/internal/models/request_models"
	"flowstate/pkg/utils"
)

const (
	insightsBreakerName = "insights"

	defaultSystemPrompt      = "You are a helpful AI assistant focused on productivity and flow state optimization."
	flowAnalysisSystemPrompt = "You are an expert in analyzing flow states and productivity patterns. Provide insights based on the session data."
	coachSystemPrompt        = "You are a productivity coach specializing in flow states. Provide actionable advice and encouragement."

	noResponse = "No response generated"
)

// ChatCompleter is the part of the OpenAI client the insights service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type InsightsService interface {
	Chat(ctx context.Context, request request_models.ChatRequest) (string, error)
}

type insightsService struct {
	client  ChatCompleter
	cfg     config.OpenAIConfig
	breaker *gobreaker.CircuitBreaker[openai.ChatCompletionResponse]
}

// BreakerSettings controls when the provider is considered down.
type BreakerSettings struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

var DefaultBreakerSettings = BreakerSettings{FailureThreshold: 5, OpenTimeout: 30 * time.Second}

func NewInsightsService(client ChatCompleter, cfg config.OpenAIConfig, bs BreakerSettings) InsightsService {
	settings := gobreaker.Settings{
		Name:        insightsBreakerName,
		MaxRequests: 1,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(insightsBreakerName).Set(0)

	return &insightsService{
		client:  client,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[openai.ChatCompletionResponse](settings),
	}
}

// buildPrompt picks the system prompt for the chat type and rewrites the
// user's last message with any structured context.
func buildPrompt(request request_models.ChatRequest) (system, user string, err error) {
	system = defaultSystemPrompt
	if n := len(request.Messages); n > 0 {
		user = request.Messages[n-1].Content
	}

	switch {
	case request.Type == request_models.ChatTypeFlowAnalysis && request.SessionData != nil:
		data, err := json.MarshalIndent(request.SessionData, "", "  ")
		if err != nil {
			return "", "", fmt.Errorf("%w: sessionData: %v", utils.ErrInvalidInput, err)
		}
		system = flowAnalysisSystemPrompt
		user = "Analyze this flow session data and provide insights:\n" + string(data)
	case request.Type == request_models.ChatTypeCoach:
		system = coachSystemPrompt
		if request.Context != nil {
			data, err := json.Marshal(request.Context)
			if err != nil {
				return "", "", fmt.Errorf("%w: context: %v", utils.ErrInvalidInput, err)
			}
			user = fmt.Sprintf("Context: %s\n\nUser question: %s", data, user)
		}
	}
	return system, user, nil
}

func (s *insightsService) Chat(ctx context.Context, request request_models.ChatRequest) (string, error) {
	if len(request.Messages) == 0 {
		return "", fmt.Errorf("%w: messages array is required", utils.ErrInvalidInput)
	}
	if s.cfg.APIKey == "" && s.cfg.BaseURL == "" {
		return "", fmt.Errorf("%w: no provider configured", utils.ErrInsightsUnavailable)
	}

	system, user, err := buildPrompt(request)
	if err != nil {
		return "", err
	}

	completion, err := s.breaker.Execute(func() (openai.ChatCompletionResponse, error) {
		return s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: s.cfg.Temperature,
			MaxTokens:   s.cfg.MaxTokens,
		})
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(insightsBreakerName, "rejected").Inc()
		return "", fmt.Errorf("%w: %w", utils.ErrInsightsUnavailable, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(insightsBreakerName, "failure").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("model", s.cfg.Model).Msg("chat completion failed")
		return "", fmt.Errorf("%w: %w", utils.ErrInsightsUnavailable, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(insightsBreakerName, "success").Inc()

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return noResponse, nil
	}
	return completion.Choices[0].Message.Content, nil
}

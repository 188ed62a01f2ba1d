package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowstate/internal/config"
	"flowstate/internal/models/request_models"
	"flowstate/pkg/utils"
)

var testOpenAIConfig = config.OpenAIConfig{
	APIKey:      "key",
	Model:       "llama-3.3-70b-versatile",
	MaxTokens:   1000,
	Temperature: 0.7,
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}}},
	}
}

func userMessages(content string) []request_models.ChatMessage {
	return []request_models.ChatMessage{
		{Role: "user", Content: "earlier"},
		{Role: "user", Content: content},
	}
}

func TestBuildPrompt(t *testing.T) {
	system, user, err := buildPrompt(request_models.ChatRequest{Messages: userMessages("how do I focus?")})
	require.NoError(t, err)
	assert.Equal(t, defaultSystemPrompt, system)
	assert.Equal(t, "how do I focus?", user)

	system, user, err = buildPrompt(request_models.ChatRequest{
		Messages:    userMessages("ignored"),
		Type:        request_models.ChatTypeFlowAnalysis,
		SessionData: map[string]any{"duration": 45},
	})
	require.NoError(t, err)
	assert.Equal(t, flowAnalysisSystemPrompt, system)
	assert.Equal(t, "Analyze this flow session data and provide insights:\n{\n  \"duration\": 45\n}", user)

	system, user, err = buildPrompt(request_models.ChatRequest{
		Messages: userMessages("what next?"),
		Type:     request_models.ChatTypeCoach,
		Context:  map[string]any{"streak": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, coachSystemPrompt, system)
	assert.Equal(t, "Context: {\"streak\":3}\n\nUser question: what next?", user)

	// flow-analysis without data falls back to the default prompt
	system, _, err = buildPrompt(request_models.ChatRequest{Messages: userMessages("x"), Type: request_models.ChatTypeFlowAnalysis})
	require.NoError(t, err)
	assert.Equal(t, defaultSystemPrompt, system)
}

func TestInsightsService_Chat(t *testing.T) {
	ctx := context.Background()
	client := new(MockChatCompleter)
	svc := NewInsightsService(client, testOpenAIConfig, DefaultBreakerSettings)

	client.On("CreateChatCompletion", ctx, mock.MatchedBy(func(r openai.ChatCompletionRequest) bool {
		return r.Model == "llama-3.3-70b-versatile" && r.MaxTokens == 1000 && len(r.Messages) == 2 &&
			r.Messages[0].Role == openai.ChatMessageRoleSystem && r.Messages[1].Content == "hi"
	})).Return(completion("Take a short walk."), nil).Once()

	out, err := svc.Chat(ctx, request_models.ChatRequest{Messages: userMessages("hi")})
	require.NoError(t, err)
	assert.Equal(t, "Take a short walk.", out)

	client.On("CreateChatCompletion", ctx, mock.Anything).Return(openai.ChatCompletionResponse{}, nil).Once()
	out, err = svc.Chat(ctx, request_models.ChatRequest{Messages: userMessages("hi")})
	require.NoError(t, err)
	assert.Equal(t, noResponse, out)
}

func TestInsightsService_RequiresMessages(t *testing.T) {
	svc := NewInsightsService(new(MockChatCompleter), testOpenAIConfig, DefaultBreakerSettings)
	_, err := svc.Chat(context.Background(), request_models.ChatRequest{})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestInsightsService_Unconfigured(t *testing.T) {
	svc := NewInsightsService(new(MockChatCompleter), config.OpenAIConfig{}, DefaultBreakerSettings)
	_, err := svc.Chat(context.Background(), request_models.ChatRequest{Messages: userMessages("hi")})
	assert.ErrorIs(t, err, utils.ErrInsightsUnavailable)
}

func TestInsightsService_BreakerOpens(t *testing.T) {
	ctx := context.Background()
	client := new(MockChatCompleter)
	svc := NewInsightsService(client, testOpenAIConfig, BreakerSettings{FailureThreshold: 2, OpenTimeout: time.Minute})

	client.On("CreateChatCompletion", ctx, mock.Anything).
		Return(openai.ChatCompletionResponse{}, errors.New("upstream 502"))

	for i := 0; i < 2; i++ {
		_, err := svc.Chat(ctx, request_models.ChatRequest{Messages: userMessages("hi")})
		assert.ErrorIs(t, err, utils.ErrInsightsUnavailable)
	}

	_, err := svc.Chat(ctx, request_models.ChatRequest{Messages: userMessages("hi")})
	require.ErrorIs(t, err, utils.ErrInsightsUnavailable)
	assert.True(t, strings.Contains(err.Error(), "circuit breaker is open"))
	client.AssertNumberOfCalls(t, "CreateChatCompletion", 2)
}

package utils

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIClient builds a chat client. baseURL points it at any
// OpenAI-compatible endpoint (Groq, a local gateway); empty means OpenAI.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return openai.NewClientWithConfig(cfg)
}

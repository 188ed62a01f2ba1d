package request_models

const (
	ChatTypeDefault      = "default"
	ChatTypeFlowAnalysis = "flow-analysis"
	ChatTypeCoach        = "coach"
)

type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages    []ChatMessage  `json:"messages" binding:"required,min=1,dive"`
	Type        string         `json:"type"`
	SessionData map[string]any `json:"sessionData"`
	Context     map[string]any `json:"context"`
}

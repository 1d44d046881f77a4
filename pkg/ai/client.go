package ai

import "context"

// ChatMessage is a single chat turn sent to an OpenAI-compatible endpoint
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat constrains the completion output format
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatChoice is one completion candidate
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatCompleter is an LLM endpoint that answers a prompt with a JSON object.
// Both the Groq and OpenAI clients implement it; the pipeline prefers Groq
// when configured and falls back to OpenAI otherwise.
type ChatCompleter interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

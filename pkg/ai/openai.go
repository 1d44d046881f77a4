package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/meeting-analyzer/pkg/config"
)

// Fixed model identifiers. These are constants of the pipeline, not
// user-configurable knobs.
const (
	whisperModel        = "whisper-1"
	openAIAnalysisModel = "gpt-4o"
)

// OpenAIClient is a minimal OpenAI client covering Whisper transcription
// and chat completions
type OpenAIClient struct {
	apiKey  string
	baseURL string
	// Transcription uploads whole audio files, so it gets a much longer
	// timeout than chat.
	chatClient       *http.Client
	transcribeClient *http.Client
}

// NewOpenAIClient creates an OpenAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENAI_API_URL")
		if base == "" {
			base = "https://api.openai.com"
		}
	}

	return &OpenAIClient{
		apiKey:           apiKey,
		baseURL:          base,
		chatClient:       &http.Client{Timeout: 120 * time.Second},
		transcribeClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// TranscriptionSegment is one timed span of the verbose Whisper response
type TranscriptionSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResponse is the verbose_json response shape
type TranscriptionResponse struct {
	Text     string                 `json:"text"`
	Segments []TranscriptionSegment `json:"segments"`
	Language string                 `json:"language"`
}

// Transcribe submits audio to the Whisper endpoint and returns the verbose
// transcription. The reader provides the canonical WAV bytes.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to buffer audio: %w", err)
	}
	if err := mw.WriteField("model", whisperModel); err != nil {
		return nil, err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.transcribeClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("openai transcription returned status %d", resp.StatusCode)
	}

	var tr TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// ModelName returns the fixed analysis model identifier
func (c *OpenAIClient) ModelName() string {
	return openAIAnalysisModel
}

// CompleteJSON sends the prompt to OpenAI chat completions and returns the
// assistant content. Used when no Groq key is configured.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:          openAIAnalysisModel,
		Messages:       []ChatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.3,
		MaxTokens:      8000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.chatClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return cr.Choices[0].Message.Content, nil
}

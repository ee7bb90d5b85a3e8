package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-companion/pkg/config"
)

// OpenRouterClient is a minimal client for OpenRouter chat completion calls
// used for LLM analysis. One call equals one extraction.
type OpenRouterClient struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	maxTokens int
}

// NewOpenRouterClient creates an OpenRouter client using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewOpenRouterClient(cfg *config.OpenRouterConfig) *OpenRouterClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENROUTER_API_URL")
		if base == "" {
			base = "https://openrouter.ai/api"
		}
	}

	timeout := 60 * time.Second
	if cfg != nil && cfg.RequestTimeout > 0 {
		timeout = cfg.RequestTimeout
	}

	maxTokens := 8000
	if cfg != nil && cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}

	return &OpenRouterClient{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(base, "/"),
		client:    &http.Client{Timeout: timeout},
		maxTokens: maxTokens,
	}
}

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests a specific output framing from the model
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []Message       `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// UpstreamError is a typed failure from the AI provider carrying the
// HTTP status it answered with (rate limit, auth, model errors).
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openrouter returned status %d: %s", e.StatusCode, e.Message)
}

// errorBody is the provider's error envelope
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateChatCompletion sends one chat completion request and returns the
// assistant message content. Transport and provider failures come back as
// *UpstreamError; an empty choice list is an error as well.
func (c *OpenRouterClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	if req.MaxTokens == 0 {
		req.MaxTokens = c.maxTokens
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		msg := ""
		if json.Unmarshal(body, &eb) == nil {
			msg = eb.Error.Message
		}
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from openrouter")
	}
	return cr.Choices[0].Message.Content, nil
}

// CreateJSONCompletion runs a system+user prompt pair in JSON mode and
// returns the raw assistant content. Callers still strip code fences before
// parsing since models occasionally violate strict-JSON framing.
func (c *OpenRouterClient) CreateJSONCompletion(ctx context.Context, model, system, user string) (string, error) {
	return c.CreateChatCompletion(ctx, ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
}

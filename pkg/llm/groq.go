package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/notetrackhq/notetrack/pkg/config"
	"github.com/notetrackhq/notetrack/pkg/jobcontext"
)

// GroqClient is a minimal client for Groq chat completions. It owns request
// and response shapes only; semantic validation of the returned JSON belongs
// to the caller.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.LLMConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	model := "llama-3.3-70b-versatile"
	temperature := 0.2
	maxTokens := 4096
	timeout := 60 * time.Second
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.Temperature > 0 {
			temperature = cfg.Temperature
		}
		if cfg.MaxTokens > 0 {
			maxTokens = cfg.MaxTokens
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &GroqClient{
		apiKey:      apiKey,
		baseURL:     base,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests structured model output
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []Message       `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature"`
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

// CompleteJSON sends a system+user prompt pair and returns the assistant
// content. JSON mode is always requested and the decoding temperature is
// fixed by configuration. Transient transport failures (429, 5xx, network)
// are retried with bounded exponential backoff inside this single call.
func (g *GroqClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Model: g.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    g.temperature,
		MaxTokens:      g.maxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var content string
	doFn := func() error {
		content, err = g.doRequest(ctx, b)
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 8 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(doFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return content, nil
}

func (g *GroqClient) doRequest(ctx context.Context, body []byte) (string, error) {
	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain for connection reuse; the body is not part of the contract.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}

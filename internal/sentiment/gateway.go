package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGatewayURL is the chat-completion endpoint used when none is configured.
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel      = "google/gemini-2.5-flash"
	DefaultTimeout    = 15 * time.Second

	maxResponseBytes = 1 << 20

	systemPrompt = `You are a sentiment analysis expert. Analyze the given feedback comment and classify it as exactly one of: "Positive", "Negative", or "Neutral". Respond with ONLY the sentiment classification word, nothing else.`
	userPrompt   = "Analyze this feedback comment and respond with only one word - Positive, Negative, or Neutral:\n\n\"%s\""
)

var (
	// ErrRateLimited is returned when the gateway answers 429.
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
	// ErrPaymentRequired is returned when the gateway answers 402.
	ErrPaymentRequired = errors.New("payment required, please add credits to the AI gateway workspace")
	// ErrClassificationFailed covers any other gateway or transport failure.
	ErrClassificationFailed = errors.New("sentiment classification failed")
)

// GatewayConfig configures the chat-completion gateway.
type GatewayConfig struct {
	URL         string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	APIKey      string
}

// Gateway sends classification prompts to a chat-completion endpoint.
type Gateway struct {
	httpClient  *http.Client
	url         string
	model       string
	temperature float64
	maxTokens   int
	apiKey      string
}

// NewGateway creates a gateway client. Zero-valued fields fall back to defaults.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultGatewayURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Gateway{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		url:         cfg.URL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		apiKey:      strings.TrimSpace(cfg.APIKey),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete asks the gateway to label comment and returns the raw answer text.
// ok is false when the gateway answered 2xx but the body carried no usable answer.
func (g *Gateway) Complete(ctx context.Context, comment string) (answer string, ok bool, err error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPrompt, comment)},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: marshaling request: %v", ErrClassificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("%w: creating request: %v", ErrClassificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: sending request: %v", ErrClassificationFailed, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: closing body: %v", ErrClassificationFailed, closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", false, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", false, ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", false, fmt.Errorf("%w: gateway returned status %d", ErrClassificationFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", false, fmt.Errorf("%w: reading response: %v", ErrClassificationFailed, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		return "", false, nil
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), true, nil
}

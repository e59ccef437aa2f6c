package openai

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

	"humanizer-backend/internal/llm"
	"humanizer-backend/internal/shared/resilience"
	"humanizer-backend/internal/shared/telemetry"
)

var apiURL = "https://api.openai.com/v1/chat/completions"

const operation = "openai.chat"

// Config configures the chat-completion client.
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
	// NoTemperatureModels lists models that reject an explicit temperature.
	NoTemperatureModels []string
}

// Client implements llm.Completer using OpenAI Chat Completions.
type Client struct {
	apiKey      string
	model       string
	temperature float32
	noTemp      map[string]struct{}
	httpClient  *http.Client
	exec        *resilience.Executor
}

// NewClient constructs a new OpenAI client. exec may be nil.
func NewClient(cfg Config, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("OPENAI_MODEL is required for OpenAI")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	noTemp := make(map[string]struct{}, len(cfg.NoTemperatureModels))
	for _, m := range cfg.NoTemperatureModels {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			noTemp[m] = struct{}{}
		}
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		noTemp:      noTemp,
		httpClient:  &http.Client{Timeout: timeout},
		exec:        exec,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the conversation and returns the first choice's content.
// A model that rejects the configured temperature is retried once without it.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	withTemp := c.sendsTemperature()
	var content string
	err := c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		out, err := c.completeOnce(ctx, messages, withTemp)
		if err != nil && withTemp && isTemperatureUnsupported(err) {
			withTemp = false
			out, err = c.completeOnce(ctx, messages, false)
		}
		if err != nil {
			return err
		}
		content = out
		return nil
	}, resilience.ClassifyHTTP)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) completeOnce(ctx context.Context, messages []llm.Message, withTemp bool) (string, error) {
	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:    c.model,
		Messages: reqMessages,
	}
	if withTemp {
		temp := c.temperature
		reqBody.Temperature = &temp
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if parseErr == nil && parsed.Error != nil {
			msg = fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type)
		}
		return "", &resilience.HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       msg,
		}
	}
	if parseErr != nil {
		return "", fmt.Errorf("openai response parse: %w", parseErr)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	if parsed.Usage != nil {
		telemetry.Info("llm.usage", map[string]any{
			"model":             c.model,
			"prompt_tokens":     parsed.Usage.PromptTokens,
			"completion_tokens": parsed.Usage.CompletionTokens,
			"total_tokens":      parsed.Usage.TotalTokens,
		})
	}
	return content, nil
}

func (c *Client) sendsTemperature() bool {
	if isGPT5(c.model) {
		return false
	}
	_, denied := c.noTemp[strings.ToLower(strings.TrimSpace(c.model))]
	return !denied
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

func isTemperatureUnsupported(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "temperature") && (strings.Contains(msg, "unsupported") || strings.Contains(msg, "does not support"))
}

var _ llm.Completer = (*Client)(nil)

package humanize

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

// RemoteClient calls a deployed humanize function over HTTP.
type RemoteClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteClient targets url. The timeout should exceed the provider poll budget.
func NewRemoteClient(url, apiKey string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 150 * time.Second
	}
	return &RemoteClient{
		url:        strings.TrimSpace(url),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type remotePayload struct {
	Text        string  `json:"text"`
	Readability string  `json:"readability"`
	Purpose     string  `json:"purpose"`
	Strength    float64 `json:"strength"`
}

// Humanize posts the request and maps {error, success:false} back to Go errors.
// A 400 comes back as a *ValidationError.
func (c *RemoteClient) Humanize(ctx context.Context, req Request) (Output, error) {
	opts := req.Options.Normalize()
	payload, err := json.Marshal(remotePayload{
		Text:        req.Text,
		Readability: string(opts.Readability),
		Purpose:     string(opts.Purpose),
		Strength:    opts.Strength,
	})
	if err != nil {
		return Output{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Output{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Output{}, fmt.Errorf("humanize function: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Output{}, fmt.Errorf("humanize function: read body: %w", err)
	}
	var body FunctionResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return Output{}, fmt.Errorf("humanize function: status %d: unexpected body", resp.StatusCode)
	}
	if !body.Success {
		msg := strings.TrimSpace(body.Error)
		if msg == "" {
			msg = "Failed to humanize text"
		}
		if resp.StatusCode == http.StatusBadRequest {
			return Output{}, &ValidationError{Message: msg}
		}
		return Output{}, errors.New(msg)
	}
	if err := checkOutput(req.Text, body.HumanizedText); err != nil {
		return Output{}, err
	}
	return Output{HumanizedText: body.HumanizedText, Strategy: "remote"}, nil
}

var _ Humanizer = (*RemoteClient)(nil)

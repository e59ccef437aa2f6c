package undetectable

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

	"humanizer-backend/internal/shared/resilience"
	"humanizer-backend/internal/shared/telemetry"
)

const (
	defaultBaseURL      = "https://humanize.undetectable.ai"
	defaultPollInterval = 5 * time.Second
	defaultPollAttempts = 20
	defaultModel        = "v11"
	defaultPollSlack    = 10 * time.Second
)

var (
	// ErrInsufficientCredits signals the provider account ran out of words/credits.
	ErrInsufficientCredits = errors.New("undetectable: insufficient credits")
	// ErrPollTimeout is returned when the attempt budget is spent without output.
	ErrPollTimeout = errors.New("undetectable: polling timed out")
)

// Config configures the submit/poll client.
type Config struct {
	APIKey       string
	UserID       string
	BaseURL      string
	PollInterval time.Duration
	PollAttempts int
	Timeout      time.Duration
}

// SubmitRequest is the document payload accepted by the submit endpoint.
type SubmitRequest struct {
	Content     string `json:"content"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	Strength    string `json:"strength"`
	Model       string `json:"model,omitempty"`
}

type submitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type documentRequest struct {
	ID string `json:"id"`
}

type documentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output string `json:"output"`
}

// Client submits documents and polls for the humanized output.
type Client struct {
	cfg        Config
	httpClient *http.Client
	exec       *resilience.Executor
	sleep      func(context.Context, time.Duration) error

	// pollSlack is added to attempts*interval to bound the whole poll loop.
	pollSlack time.Duration
}

// NewClient builds a client. exec may be nil.
func NewClient(cfg Config, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("UNDETECTABLE_API_KEY is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = defaultPollAttempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		exec:       exec,
		sleep:      sleepContext,
		pollSlack:  defaultPollSlack,
	}, nil
}

// Humanize submits the document and polls until it completes or the budget runs out.
func (c *Client) Humanize(ctx context.Context, req SubmitRequest) (string, error) {
	id, err := c.Submit(ctx, req)
	if err != nil {
		return "", err
	}
	job := newJob(id)
	if err := c.Await(ctx, job); err != nil {
		return "", err
	}
	return job.Output, nil
}

// Submit creates a document job and returns its ID.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if req.Model == "" {
		req.Model = defaultModel
	}
	var out submitResponse
	err := c.exec.Execute(ctx, "undetectable.submit", func(ctx context.Context) error {
		return c.post(ctx, "/submit", req, &out, "undetectable.submit")
	}, classify)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", fmt.Errorf("undetectable submit: response missing id")
	}
	return out.ID, nil
}

// Await polls the job with a fixed delay. Rate-limited polls do not end the loop;
// any other failure does. The whole loop is bounded by attempts*interval plus a
// small slack, so slow polls cannot stretch it past the budget.
func (c *Client) Await(ctx context.Context, job *Job) error {
	budget := time.Duration(c.cfg.PollAttempts)*c.cfg.PollInterval + c.pollSlack
	pollCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	for attempt := 1; attempt <= c.cfg.PollAttempts; attempt++ {
		if err := c.sleep(pollCtx, c.cfg.PollInterval); err != nil {
			return c.budgetErr(ctx, job, err)
		}
		resp, err := c.Poll(pollCtx, job.ID)
		if err != nil {
			if ctx.Err() == nil && pollCtx.Err() != nil {
				return c.budgetErr(ctx, job, err)
			}
			var statusErr *resilience.HTTPStatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
				telemetry.Warn("undetectable.poll_rate_limited", map[string]any{
					"job_id":  job.ID,
					"attempt": attempt,
				})
				continue
			}
			return err
		}
		job.apply(resp)
		if job.Done() {
			return nil
		}
	}
	return fmt.Errorf("%w: job %s after %d attempts", ErrPollTimeout, job.ID, c.cfg.PollAttempts)
}

// budgetErr maps an expired poll deadline to ErrPollTimeout and passes the
// caller's own cancellation through.
func (c *Client) budgetErr(ctx context.Context, job *Job, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: job %s exceeded poll deadline", ErrPollTimeout, job.ID)
	}
	return fmt.Errorf("%w: job %s exceeded poll deadline: %v", ErrPollTimeout, job.ID, err)
}

// Poll fetches the current state of a job once.
func (c *Client) Poll(ctx context.Context, id string) (documentResponse, error) {
	var out documentResponse
	err := c.post(ctx, "/document", documentRequest{ID: id}, &out, "undetectable.poll")
	return out, err
}

func (c *Client) post(ctx context.Context, path string, payload any, out any, op string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.cfg.APIKey)
	if c.cfg.UserID != "" {
		req.Header.Set("X-User-ID", c.cfg.UserID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := strings.TrimSpace(string(raw))
		if isInsufficientCredits(resp.StatusCode, text) {
			return fmt.Errorf("%w: %s", ErrInsufficientCredits, text)
		}
		return &resilience.HTTPStatusError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(text, 500),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func classify(err error) resilience.ErrorClassification {
	if errors.Is(err, ErrInsufficientCredits) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ClassifyHTTP(err)
}

func isInsufficientCredits(status int, body string) bool {
	if status == http.StatusPaymentRequired {
		return true
	}
	lower := strings.ToLower(body)
	return strings.Contains(lower, "insufficient credits") ||
		strings.Contains(lower, "not enough credits") ||
		strings.Contains(lower, "insufficient words")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

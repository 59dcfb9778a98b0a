package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotedesk/internal/config"
	"quotedesk/internal/port"
)

// Client implements port.TextExtractor against the external OCR service.
// The service is asynchronous (submit a job, poll until done); callers see a
// single blocking call bounded by ctx and the HTTP client timeout.
type Client struct {
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	client       *http.Client
}

var _ port.TextExtractor = (*Client)(nil)

// NewClient creates an OCR client from config.
func NewClient(cfg *config.OCRConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom base URL (for testing).
func NewClientWithEndpoint(cfg *config.OCRConfig, baseURL string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	pollInterval := time.Duration(cfg.PollIntervalSecs) * time.Second
	if pollInterval == 0 {
		pollInterval = 2 * time.Second
	}
	return &Client{
		baseURL:      baseURL,
		apiKey:       cfg.APIKey,
		pollInterval: pollInterval,
		client:       &http.Client{Timeout: timeout},
	}
}

func (c *Client) ExtractText(ctx context.Context, input port.ExtractInput) (string, error) {
	jobID, err := c.submit(ctx, input)
	if err != nil {
		return "", NewExtractionError(err)
	}

	text, err := c.poll(ctx, jobID)
	if err != nil {
		return "", NewExtractionError(err)
	}
	if text == "" {
		return "", NewExtractionError(fmt.Errorf("job %s produced no text", jobID))
	}
	return text, nil
}

type submitResponse struct {
	JobID string `json:"jobId"`
}

func (c *Client) submit(ctx context.Context, input port.ExtractInput) (string, error) {
	reqBody := map[string]interface{}{
		"fileName":    input.FileName,
		"contentType": input.ContentType,
		"data":        base64.StdEncoding.EncodeToString(input.Data),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting job: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("OCR API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var sr submitResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if sr.JobID == "" {
		return "", fmt.Errorf("OCR API returned no job id")
	}
	return sr.JobID, nil
}

type jobResponse struct {
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

func (c *Client) poll(ctx context.Context, jobID string) (string, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		job, err := c.getJob(ctx, jobID)
		if err != nil {
			return "", err
		}

		switch job.Status {
		case "done":
			return job.Text, nil
		case "failed":
			return "", fmt.Errorf("job %s failed: %s", jobID, job.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) getJob(ctx context.Context, jobID string) (*jobResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polling job %s: %w", jobID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var jr jobResponse
	if err := json.Unmarshal(respBody, &jr); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	return &jr, nil
}

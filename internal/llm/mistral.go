package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/model"
)

// MistralClient implements BatchClient and AgentClient against the Mistral
// API. Requests are hand-rolled over net/http; no SDK is used.
type MistralClient struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	model        string
	agentID      string
	temperature  float64
	maxTokens    int
	pollInterval time.Duration
	agentDelay   time.Duration
	limiter      *rateLimiter

	mu       sync.Mutex
	lastCall time.Time
}

// NewMistral creates a Mistral client for both the batch and agent stages.
func NewMistral(cfg Config) (*MistralClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: mistral API key is required", common.ErrInvalidConfig)
	}
	cfg = cfg.withDefaults()

	return &MistralClient{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		model:        cfg.Model,
		agentID:      cfg.AgentID,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		pollInterval: cfg.PollInterval,
		agentDelay:   cfg.AgentDelay,
		limiter:      newRateLimiter(30),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// SubmitBatch uploads the request JSONL and creates a batch job.
func (c *MistralClient) SubmitBatch(ctx context.Context, requests []BatchRequest) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, req := range requests {
		// The job-level model does not flow into the JSONL lines; every
		// body must carry the model and sampling settings itself.
		if req.Body.Model == "" {
			req.Body.Model = c.model
		}
		if req.Body.Temperature == 0 {
			req.Body.Temperature = c.temperature
		}
		if req.Body.MaxTokens == 0 {
			req.Body.MaxTokens = c.maxTokens
		}
		if err := enc.Encode(req); err != nil {
			return "", fmt.Errorf("failed to encode batch request %s: %w", req.CustomID, err)
		}
	}

	fileID, err := c.uploadFile(ctx, "batch_input.jsonl", buf.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrBatchSubmission, err)
	}

	body := map[string]any{
		"input_files": []string{fileID},
		"model":       c.model,
		"endpoint":    "/v1/chat/completions",
		"metadata":    map[string]string{"job_type": "opportunity_assessment"},
	}

	var job BatchJob
	if err := c.postJSON(ctx, "/v1/batch/jobs", body, &job); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrBatchSubmission, err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("%w: no job id in response", common.ErrBatchSubmission)
	}
	return job.ID, nil
}

// JobStatus fetches the current state of a batch job.
func (c *MistralClient) JobStatus(ctx context.Context, jobID string) (BatchJob, error) {
	var job BatchJob
	if err := c.getJSON(ctx, "/v1/batch/jobs/"+jobID, &job); err != nil {
		return BatchJob{}, err
	}
	return job, nil
}

// WaitForJob polls the job at a fixed interval until it reaches a terminal
// state. onPoll, when set, is invoked after every status fetch.
func (c *MistralClient) WaitForJob(ctx context.Context, jobID string, onPoll func(BatchJob)) (BatchJob, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		job, err := c.JobStatus(ctx, jobID)
		if err != nil {
			return BatchJob{}, fmt.Errorf("failed to poll batch job: %w", err)
		}
		if onPoll != nil {
			onPoll(job)
		}
		if TerminalStatus(job.Status) {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return BatchJob{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// batchLine is one line of the batch output JSONL.
type batchLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		Body struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
}

// JobResults downloads and parses the output file of a completed job. Lines
// that cannot be decoded become INDETERMINATE results; nothing raises.
func (c *MistralClient) JobResults(ctx context.Context, job BatchJob) ([]model.BatchResult, error) {
	if job.OutputFile == "" {
		return nil, fmt.Errorf("%w: job %s has no output file", common.ErrBatchJobFailed, job.ID)
	}

	data, err := c.download(ctx, "/v1/files/"+job.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to download batch output: %w", err)
	}

	var results []model.BatchResult
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var line batchLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			results = append(results, model.BatchResult{
				Decision:  model.DecisionIndeterminate,
				Rationale: "unparseable batch response line: " + raw,
				Raw:       raw,
			})
			continue
		}

		content := ""
		if len(line.Response.Body.Choices) > 0 {
			content = line.Response.Body.Choices[0].Message.Content
		}
		decision, rationale := ParseDecision(content)
		results = append(results, model.BatchResult{
			CustomID:  line.CustomID,
			Decision:  decision,
			Rationale: rationale,
			Raw:       content,
		})
	}
	if err := scanner.Err(); err != nil {
		return results, fmt.Errorf("failed to read batch output: %w", err)
	}

	return results, nil
}

// Verify sends one synchronous verification prompt. A short delay between
// calls keeps the agent endpoint inside its rate limits.
func (c *MistralClient) Verify(ctx context.Context, prompt string) (model.AgentResult, error) {
	c.mu.Lock()
	var wait time.Duration
	if !c.lastCall.IsZero() {
		wait = c.agentDelay - time.Since(c.lastCall)
	}
	c.mu.Unlock()
	if wait > 0 {
		select {
		case <-ctx.Done():
			return model.AgentResult{}, ctx.Err()
		case <-time.After(wait):
		}
	}
	if err := c.limiter.wait(ctx); err != nil {
		return model.AgentResult{}, err
	}
	c.mu.Lock()
	c.lastCall = time.Now()
	c.mu.Unlock()

	path := "/v1/chat/completions"
	body := map[string]any{
		"model":       c.model,
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
		"messages": []ChatMessage{
			{Role: "system", Content: agentSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	if c.agentID != "" {
		path = "/v1/agents/completions"
		delete(body, "model")
		body["agent_id"] = c.agentID
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.postJSON(ctx, path, body, &resp); err != nil {
		return model.AgentResult{}, fmt.Errorf("%w: %v", common.ErrAgentCall, err)
	}
	if len(resp.Choices) == 0 {
		return model.AgentResult{}, fmt.Errorf("%w: no content in response", common.ErrAgentCall)
	}

	content := resp.Choices[0].Message.Content
	decision, rationale := ParseDecision(content)
	return model.AgentResult{
		Decision:       decision,
		Rationale:      rationale,
		AgentReasoning: rationale,
		Raw:            content,
	}, nil
}

// Close stops the rate limiter's refill goroutine.
func (c *MistralClient) Close() {
	c.limiter.Close()
}

// uploadFile posts a batch input file and returns its id.
func (c *MistralClient) uploadFile(ctx context.Context, name, content string) (string, error) {
	body := map[string]any{
		"purpose":   "batch",
		"file_name": name,
		"content":   content,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/v1/files", body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("no file id in upload response")
	}
	return resp.ID, nil
}

// postJSON sends a JSON POST and decodes the JSON response.
func (c *MistralClient) postJSON(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

// getJSON sends a GET and decodes the JSON response.
func (c *MistralClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

// download fetches a raw file body.
func (c *MistralClient) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *MistralClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &common.RetryableError{Err: common.ErrRateLimit, Retryable: true}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

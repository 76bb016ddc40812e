// Package llm provides the Mistral batch and agent adapters used by the
// assessment pipeline, behind provider-neutral interfaces.
package llm

import (
	"context"
	"time"

	"github.com/sosillc/bidgate/internal/model"
)

// Batch job terminal states.
const (
	JobStatusQueued          = "QUEUED"
	JobStatusRunning         = "RUNNING"
	JobStatusSuccess         = "SUCCESS"
	JobStatusFailed          = "FAILED"
	JobStatusCancelled       = "CANCELLED"
	JobStatusTimeoutExceeded = "TIMEOUT_EXCEEDED"
)

// TerminalStatus reports whether a batch job status is final.
func TerminalStatus(status string) bool {
	switch status {
	case JobStatusSuccess, JobStatusFailed, JobStatusCancelled, JobStatusTimeoutExceeded:
		return true
	}
	return false
}

// ChatMessage is one message in a chat-completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatBody is the chat-completion body embedded in batch requests.
type ChatBody struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// BatchRequest is one line of the batch input JSONL.
type BatchRequest struct {
	CustomID string   `json:"custom_id"`
	Body     ChatBody `json:"body"`
}

// BatchJob is the provider's view of a submitted batch job.
type BatchJob struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	TotalRequests     int    `json:"total_requests"`
	SucceededRequests int    `json:"succeeded_requests"`
	OutputFile        string `json:"output_file"`
}

// BatchClient submits and monitors bulk assessment jobs.
type BatchClient interface {
	SubmitBatch(ctx context.Context, requests []BatchRequest) (string, error)
	JobStatus(ctx context.Context, jobID string) (BatchJob, error)
	WaitForJob(ctx context.Context, jobID string, onPoll func(BatchJob)) (BatchJob, error)
	JobResults(ctx context.Context, job BatchJob) ([]model.BatchResult, error)
}

// AgentClient verifies individual records with synchronous calls.
type AgentClient interface {
	Verify(ctx context.Context, prompt string) (model.AgentResult, error)
}

// Config holds LLM adapter configuration.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	AgentID      string
	Temperature  float64
	MaxTokens    int
	PollInterval time.Duration
	AgentDelay   time.Duration
}

// Defaults for the Mistral adapters.
const (
	DefaultBaseURL      = "https://api.mistral.ai"
	DefaultModel        = "mistral-large-latest"
	DefaultTemperature  = 0.1
	DefaultMaxTokens    = 1500
	DefaultPollInterval = 10 * time.Second
	DefaultAgentDelay   = 5 * time.Second
)

// withDefaults fills unset configuration fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.AgentDelay == 0 {
		c.AgentDelay = DefaultAgentDelay
	}
	return c
}

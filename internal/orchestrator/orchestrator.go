// Package orchestrator drives the three-stage assessment pipeline: the
// deterministic gate, the bulk batch assessment, and agent verification.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/sosillc/bidgate/internal/fetch"
	"github.com/sosillc/bidgate/internal/gate"
	"github.com/sosillc/bidgate/internal/llm"
	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/output"
)

// Default text and batching limits.
const (
	DefaultTextLimit      = 400_000
	defaultSubmitAttempts = 3
	defaultSubmitDelay    = 5 * time.Second
)

// Config holds the knobs for one pipeline run.
type Config struct {
	EndpointsPath   string
	OutputDir       string
	TextLimit       int
	MaxBatchSize    int
	DocumentWorkers int
	SkipAgent       bool
	MonitorBatch    bool
	SubmitAttempts  int
	SubmitDelay     time.Duration
}

// Fetcher retrieves opportunities and their document text for a search id.
type Fetcher interface {
	Search(ctx context.Context, searchID string) ([]*model.Opportunity, error)
	FetchDocuments(ctx context.Context, opportunities []*model.Opportunity, workers int)
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	cfg     Config
	fetcher Fetcher
	engine  *gate.Engine
	batch   llm.BatchClient
	agent   llm.AgentClient
	out     *output.Manager
	logger  *slog.Logger
}

// New creates an orchestrator. The agent client may be nil when agent
// verification is disabled.
func New(cfg Config, fetcher Fetcher, engine *gate.Engine, batch llm.BatchClient, agent llm.AgentClient, out *output.Manager, logger *slog.Logger) *Orchestrator {
	if cfg.TextLimit <= 0 {
		cfg.TextLimit = DefaultTextLimit
	}
	if cfg.DocumentWorkers <= 0 {
		cfg.DocumentWorkers = fetch.DefaultDocumentWorkers
	}
	if cfg.SubmitAttempts <= 0 {
		cfg.SubmitAttempts = defaultSubmitAttempts
	}
	if cfg.SubmitDelay <= 0 {
		cfg.SubmitDelay = defaultSubmitDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:     cfg,
		fetcher: fetcher,
		engine:  engine,
		batch:   batch,
		agent:   agent,
		out:     out,
		logger:  logger,
	}
}

// pending is one opportunity that survived the gate and awaits LLM stages.
type pending struct {
	opp  *model.Opportunity
	text string
}

// runState accumulates results across search ids within one run.
type runState struct {
	meta         output.RunMetadata
	appKnockouts []model.UnifiedRecord
	needsLLM     []pending
	capReached   bool
}

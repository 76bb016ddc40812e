package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosillc/bidgate/internal/gate"
	"github.com/sosillc/bidgate/internal/llm"
	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/output"
	"github.com/sosillc/bidgate/internal/patterns"
)

type stubFetcher struct {
	opportunities map[string][]*model.Opportunity
	searchErr     error
}

func (s *stubFetcher) Search(_ context.Context, searchID string) ([]*model.Opportunity, error) {
	return s.opportunities[searchID], s.searchErr
}

func (s *stubFetcher) FetchDocuments(context.Context, []*model.Opportunity, int) {}

type stubBatch struct {
	submitErr   error
	submitted   []llm.BatchRequest
	jobStatus   string
	respond     func(customID string) model.BatchResult
	resultsFn   func(submitted []llm.BatchRequest) []model.BatchResult
	submitCalls int
}

func (s *stubBatch) SubmitBatch(_ context.Context, reqs []llm.BatchRequest) (string, error) {
	s.submitCalls++
	if s.submitErr != nil {
		return "", s.submitErr
	}
	s.submitted = reqs
	return "job-1", nil
}

func (s *stubBatch) JobStatus(context.Context, string) (llm.BatchJob, error) {
	return llm.BatchJob{ID: "job-1", Status: s.jobStatus}, nil
}

func (s *stubBatch) WaitForJob(_ context.Context, _ string, onPoll func(llm.BatchJob)) (llm.BatchJob, error) {
	job := llm.BatchJob{ID: "job-1", Status: s.jobStatus, OutputFile: "out-1"}
	if onPoll != nil {
		onPoll(job)
	}
	return job, nil
}

func (s *stubBatch) JobResults(context.Context, llm.BatchJob) ([]model.BatchResult, error) {
	if s.resultsFn != nil {
		return s.resultsFn(s.submitted), nil
	}
	var out []model.BatchResult
	for _, req := range s.submitted {
		out = append(out, s.respond(req.CustomID))
	}
	return out, nil
}

type stubAgent struct {
	calls  int
	result model.AgentResult
	err    error
}

func (s *stubAgent) Verify(context.Context, string) (model.AgentResult, error) {
	s.calls++
	return s.result, s.err
}

func testOpportunities() map[string][]*model.Opportunity {
	return map[string][]*model.Opportunity{
		"search-1": {
			{SourceID: "OPP-GO", Title: "Commercial Boeing 737 parts, refurbished acceptable"},
			{SourceID: "OPP-KO", Title: "F-16 Fighting Falcon spares"},
			{SourceID: "OPP-MAYBE", Title: "aircraft component repair services"},
		},
	}
}

func writeTestEndpoints(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "endpoints.txt")
	require.NoError(t, os.WriteFile(path, []byte("search-1\n"), 0o644))
	return path
}

func newTestOrchestrator(t *testing.T, cfg Config, batch llm.BatchClient, agent llm.AgentClient) (*Orchestrator, string) {
	t.Helper()
	outDir := t.TempDir()
	cfg.OutputDir = outDir
	if cfg.EndpointsPath == "" {
		cfg.EndpointsPath = writeTestEndpoints(t)
	}
	engine := gate.New(patterns.Default(), gate.Config{})
	fetcher := &stubFetcher{opportunities: testOpportunities()}
	manager := output.NewManager(outDir, nil)
	return New(cfg, fetcher, engine, batch, agent, manager, nil), outDir
}

func readRunData(t *testing.T, runDir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(runDir, "data.json"))
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestRunFullPipeline(t *testing.T) {
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			if strings.Contains(customID, "OPP-MAYBE") {
				return model.BatchResult{CustomID: customID, Decision: model.DecisionIndeterminate, Rationale: "unclear"}
			}
			return model.BatchResult{CustomID: customID, Decision: model.DecisionGo, Rationale: "commercial"}
		},
	}
	agent := &stubAgent{result: model.AgentResult{Decision: model.DecisionGo, Rationale: "verified"}}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true}, batch, agent)
	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	// The F-16 knockout never reaches the LLM stages.
	require.Len(t, batch.submitted, 2)
	for _, req := range batch.submitted {
		assert.NotContains(t, req.CustomID, "OPP-KO")
	}

	// GO and INDETERMINATE batch results both go through the agent.
	assert.Equal(t, 2, agent.calls)

	payload := readRunData(t, runDir)
	records := payload["records"].([]any)
	assert.Len(t, records, 3)
}

func TestRunSkipAgent(t *testing.T) {
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			return model.BatchResult{CustomID: customID, Decision: model.DecisionGo, Rationale: "commercial"}
		},
	}
	agent := &stubAgent{}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true, SkipAgent: true}, batch, agent)
	_, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, agent.calls)
}

func TestRunAgentFailureKeepsBatchDecision(t *testing.T) {
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			return model.BatchResult{CustomID: customID, Decision: model.DecisionGo, Rationale: "commercial"}
		},
	}
	agent := &stubAgent{err: errors.New("agent unavailable")}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true}, batch, agent)
	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	payload := readRunData(t, runDir)
	verified := 0
	for _, raw := range payload["records"].([]any) {
		record := raw.(map[string]any)
		if record["verification_error"] != nil {
			verified++
			assert.Equal(t, "GO", record["result"])
			assert.Equal(t, "AGENT", record["pipeline_stage"])
		}
	}
	assert.Equal(t, 2, verified)
}

func TestRunMissingBatchLineStillPersisted(t *testing.T) {
	// One keyed result plus one unattributable INDETERMINATE line, the shape
	// an unparseable batch output line decodes to. The survivor without a
	// keyed result must still appear in the artifacts.
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		resultsFn: func(submitted []llm.BatchRequest) []model.BatchResult {
			return []model.BatchResult{
				{CustomID: submitted[0].CustomID, Decision: model.DecisionGo, Rationale: "commercial"},
				{Decision: model.DecisionIndeterminate, Rationale: "unparseable batch response line: garbled"},
			}
		},
	}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true, SkipAgent: true}, batch, nil)
	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	payload := readRunData(t, runDir)
	records := payload["records"].([]any)
	require.Len(t, records, 3)

	byID := map[string]map[string]any{}
	for _, raw := range records {
		record := raw.(map[string]any)
		byID[record["solicitation_id"].(string)] = record
	}
	require.Contains(t, byID, "OPP-MAYBE")
	assert.Equal(t, "INDETERMINATE", byID["OPP-MAYBE"]["result"])
	assert.Contains(t, byID["OPP-MAYBE"]["rationale"], "missing or unparseable")

	meta := payload["metadata"].(map[string]any)
	assert.Equal(t, float64(1), meta["errors"])
}

func TestRunSubmissionFailureIsFatalButPersistsGateResults(t *testing.T) {
	batch := &stubBatch{submitErr: errors.New("upload rejected")}

	orch, outDir := newTestOrchestrator(t, Config{MonitorBatch: true, SubmitDelay: time.Millisecond}, batch, nil)
	_, err := orch.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, batch.submitCalls)

	// The APP knockouts were still written.
	matches, globErr := filepath.Glob(filepath.Join(outDir, "*", "Run_*", "assessment.csv"))
	require.NoError(t, globErr)
	assert.NotEmpty(t, matches)
}

func TestRunWithoutMonitoringExitsAfterSubmit(t *testing.T) {
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			t.Fatal("results must not be fetched when monitoring is off")
			return model.BatchResult{}
		},
	}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: false}, batch, nil)
	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	payload := readRunData(t, runDir)
	meta := payload["metadata"].(map[string]any)
	assert.Equal(t, "job-1", meta["batch_job_id"])
	// Only the gate knockout is persisted; survivors await the batch job.
	assert.Len(t, payload["records"].([]any), 1)
}

func TestRunBatchJobFailurePersistsGateResults(t *testing.T) {
	batch := &stubBatch{jobStatus: llm.JobStatusFailed}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true}, batch, nil)
	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	payload := readRunData(t, runDir)
	assert.Len(t, payload["records"].([]any), 1)
}

func TestRunBatchSizeCap(t *testing.T) {
	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			return model.BatchResult{CustomID: customID, Decision: model.DecisionGo, Rationale: "ok"}
		},
	}

	orch, _ := newTestOrchestrator(t, Config{MonitorBatch: true, MaxBatchSize: 1}, batch, nil)
	_, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch.submitted, 1)
}

func TestRunTruncatesLongText(t *testing.T) {
	longText := strings.Repeat("aircraft parts and components ", 200)
	fetcher := &stubFetcher{opportunities: map[string][]*model.Opportunity{
		"search-1": {{SourceID: "OPP-LONG", Title: "Boeing 737 parts", Text: longText}},
	}}

	batch := &stubBatch{
		jobStatus: llm.JobStatusSuccess,
		respond: func(customID string) model.BatchResult {
			return model.BatchResult{CustomID: customID, Decision: model.DecisionGo, Rationale: "ok"}
		},
	}

	outDir := t.TempDir()
	orch := New(Config{
		EndpointsPath: writeTestEndpoints(t),
		OutputDir:     outDir,
		TextLimit:     500,
		MonitorBatch:  true,
		SkipAgent:     true,
	}, fetcher, gate.New(patterns.Default(), gate.Config{}), batch, nil, output.NewManager(outDir, nil), nil)

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.submitted, 1)
	userMsg := batch.submitted[0].Body.Messages[len(batch.submitted[0].Body.Messages)-1]
	assert.LessOrEqual(t, len(userMsg.Content), 500+300, "prompt text should be truncated near the limit")
}

func TestRunMissingEndpointsFailsFast(t *testing.T) {
	batch := &stubBatch{}
	orch, _ := newTestOrchestrator(t, Config{
		EndpointsPath: filepath.Join(t.TempDir(), "absent.txt"),
	}, batch, nil)

	_, err := orch.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, batch.submitCalls)
}

func TestRunFetchErrorContinues(t *testing.T) {
	fetcher := &stubFetcher{
		opportunities: map[string][]*model.Opportunity{},
		searchErr:     fmt.Errorf("vendor API down"),
	}
	outDir := t.TempDir()
	orch := New(Config{
		EndpointsPath: writeTestEndpoints(t),
		OutputDir:     outDir,
	}, fetcher, gate.New(patterns.Default(), gate.Config{}), &stubBatch{}, nil, output.NewManager(outDir, nil), nil)

	runDir, err := orch.Run(context.Background())
	require.NoError(t, err)

	payload := readRunData(t, runDir)
	meta := payload["metadata"].(map[string]any)
	assert.Equal(t, float64(1), meta["errors"])
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *MistralClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewMistral(Config{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		PollInterval: 10 * time.Millisecond,
		AgentDelay:   time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestNewMistralRequiresAPIKey(t *testing.T) {
	_, err := NewMistral(Config{})
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSubmitBatch(t *testing.T) {
	var uploadedContent string
	var jobBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "batch", body["purpose"])
		uploadedContent, _ = body["content"].(string)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-123"})
	})
	mux.HandleFunc("POST /v1/batch/jobs", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&jobBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-456", "status": "QUEUED"})
	})

	client := newTestClient(t, mux)
	jobID, err := client.SubmitBatch(context.Background(), []BatchRequest{
		{CustomID: "opp-1", Body: ChatBody{Messages: []ChatMessage{{Role: "user", Content: "assess"}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-456", jobID)
	assert.Contains(t, uploadedContent, "opp-1")
	assert.Equal(t, []any{"file-123"}, jobBody["input_files"])
	assert.Equal(t, "/v1/chat/completions", jobBody["endpoint"])

	// Every JSONL line names the model and sampling settings itself.
	var line BatchRequest
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(uploadedContent)), &line))
	assert.Equal(t, DefaultModel, line.Body.Model)
	assert.Equal(t, DefaultTemperature, line.Body.Temperature)
	assert.Equal(t, DefaultMaxTokens, line.Body.MaxTokens)
}

func TestSubmitBatchUsesConfiguredSampling(t *testing.T) {
	var uploadedContent string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/files", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		uploadedContent, _ = body["content"].(string)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-123"})
	})
	mux.HandleFunc("POST /v1/batch/jobs", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-456", "status": "QUEUED"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewMistral(Config{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		Model:       "mistral-small-latest",
		Temperature: 0.3,
		MaxTokens:   900,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	_, err = client.SubmitBatch(context.Background(), []BatchRequest{
		{CustomID: "opp-1", Body: ChatBody{Messages: []ChatMessage{{Role: "user", Content: "assess"}}}},
	})
	require.NoError(t, err)

	var line BatchRequest
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(uploadedContent)), &line))
	assert.Equal(t, "mistral-small-latest", line.Body.Model)
	assert.Equal(t, 0.3, line.Body.Temperature)
	assert.Equal(t, 900, line.Body.MaxTokens)
}

func TestWaitForJobPollsToTerminal(t *testing.T) {
	statuses := []string{"QUEUED", "RUNNING", "SUCCESS"}
	call := 0

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/batch/jobs/job-1", func(w http.ResponseWriter, _ *http.Request) {
		status := statuses[call]
		if call < len(statuses)-1 {
			call++
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "job-1", "status": status, "output_file": "out-1",
		})
	})

	client := newTestClient(t, mux)

	var polled []string
	job, err := client.WaitForJob(context.Background(), "job-1", func(j BatchJob) {
		polled = append(polled, j.Status)
	})
	require.NoError(t, err)
	assert.Equal(t, JobStatusSuccess, job.Status)
	assert.Equal(t, statuses, polled)
}

func TestJobResults(t *testing.T) {
	output := `{"custom_id":"opp-1","response":{"body":{"choices":[{"message":{"content":"{\"decision\": \"GO\", \"rationale\": \"commercial\"}"}}]}}}
{"custom_id":"opp-2","response":{"body":{"choices":[{"message":{"content":"Decision: NO-GO because military platform"}}]}}}
not json at all
`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/files/out-1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(output))
	})

	client := newTestClient(t, mux)
	results, err := client.JobResults(context.Background(), BatchJob{ID: "job-1", OutputFile: "out-1"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "opp-1", results[0].CustomID)
	assert.Equal(t, model.DecisionGo, results[0].Decision)
	assert.Equal(t, "commercial", results[0].Rationale)

	assert.Equal(t, model.DecisionNoGo, results[1].Decision)
	assert.Contains(t, results[1].Rationale, "military platform")

	// The unparseable line degrades to INDETERMINATE instead of failing.
	assert.Equal(t, model.DecisionIndeterminate, results[2].Decision)
}

func TestJobResultsRequiresOutputFile(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	_, err := client.JobResults(context.Background(), BatchJob{ID: "job-1"})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"decision": "NO-GO", "rationale": "set-aside", "reasoning": "8(a) restriction"}`}},
			},
		})
	})

	client := newTestClient(t, mux)
	result, err := client.Verify(context.Background(), "verify this")
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoGo, result.Decision)
	assert.Equal(t, "set-aside", result.Rationale)
}

func TestVerifyConcurrent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"decision": "GO", "rationale": "fits"}`}},
			},
		})
	})

	client := newTestClient(t, mux)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Verify(context.Background(), "verify this")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestVerifyUsesAgentEndpoint(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/agents/completions", func(w http.ResponseWriter, r *http.Request) {
		called = true
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent-7", body["agent_id"])
		assert.NotContains(t, body, "model")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": `{"decision": "GO", "rationale": "fits"}`}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewMistral(Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		AgentID:    "agent-7",
		AgentDelay: time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	result, err := client.Verify(context.Background(), "verify this")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, model.DecisionGo, result.Decision)
}

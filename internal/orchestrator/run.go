package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/fetch"
	"github.com/sosillc/bidgate/internal/llm"
	"github.com/sosillc/bidgate/internal/model"
	"github.com/sosillc/bidgate/internal/output"
	"github.com/sosillc/bidgate/internal/sanitize"
)

// Run executes the full pipeline and returns the run directory. Only setup
// and batch-submission errors are fatal; every per-opportunity failure is
// recorded and the run continues.
func (o *Orchestrator) Run(ctx context.Context) (string, error) {
	searchIDs, err := fetch.ReadEndpoints(o.cfg.EndpointsPath)
	if err != nil {
		return "", err
	}

	state := &runState{
		meta: output.RunMetadata{
			RunID:     uuid.NewString()[:8],
			StartedAt: time.Now(),
			SearchIDs: searchIDs,
			AgentSkip: o.cfg.SkipAgent,
		},
	}

	for _, searchID := range searchIDs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		o.processSearchID(ctx, searchID, state)
	}

	o.logger.Info("Gate phase complete",
		"app_knockouts", len(state.appKnockouts),
		"needs_llm", len(state.needsLLM))

	records := append([]model.UnifiedRecord{}, state.appKnockouts...)

	if len(state.needsLLM) > 0 {
		llmRecords, submissionErr := o.runLLMPhases(ctx, state)
		records = append(records, llmRecords...)
		if submissionErr != nil {
			// Persist what the gate produced before surfacing the failure.
			dir, persistErr := o.persist(state, records)
			if persistErr != nil {
				o.logger.Error("Persist after submission failure also failed", "error", persistErr)
			}
			return dir, submissionErr
		}
	}

	return o.persist(state, records)
}

// processSearchID fetches, gates, and partitions one search id. Fetch
// failures are warnings: the run continues with whatever was retrieved.
func (o *Orchestrator) processSearchID(ctx context.Context, searchID string, state *runState) {
	opportunities, err := o.fetcher.Search(ctx, searchID)
	if err != nil {
		o.logger.Warn("Opportunity fetch incomplete",
			"search_id", searchID, "fetched", len(opportunities), "error", err)
		state.meta.Errors++
	}
	if len(opportunities) == 0 {
		return
	}

	o.fetcher.FetchDocuments(ctx, opportunities, o.cfg.DocumentWorkers)

	bar := progressbar.NewOptions(len(opportunities),
		progressbar.OptionSetDescription(fmt.Sprintf("Gating %s", searchID)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, opp := range opportunities {
		o.gateOne(opp, state)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
}

// gateOne runs the knock-out gate for a single opportunity. A panic inside
// the gate is recorded as an errored NO-GO so one bad record never stops
// the run.
func (o *Orchestrator) gateOne(opp *model.Opportunity, state *runState) {
	defer func() {
		if r := recover(); r != nil {
			state.meta.Errors++
			o.logger.Error("Gate evaluation failed", "solicitation_id", opp.ID(), "panic", r)
			record := sanitize.Sanitize(map[string]any{
				"solicitation_id":    opp.ID(),
				"solicitation_title": opp.Title,
				"result":             string(model.DecisionNoGo),
				"processing_method":  "APP_KNOCKOUT",
				"error":              fmt.Sprint(r),
				"rationale":          "assessment error",
				"sam_url":            opp.SAMURL(),
				"hg_url":             opp.HGURL(),
			})
			state.appKnockouts = append(state.appKnockouts, record)
		}
	}()

	result := o.engine.Assess(opp)
	o.logger.Info("Gate decision",
		"solicitation_id", opp.ID(),
		"decision", result.Decision,
		"blocker", result.PrimaryBlocker)

	if result.Decision == model.DecisionNoGo {
		state.appKnockouts = append(state.appKnockouts, sanitize.FromGate(opp, result))
		return
	}
	if result.ContactCO {
		// Navy exception records are final; the contact-CO flag carries
		// the follow-up action, so the LLM stages add nothing.
		state.appKnockouts = append(state.appKnockouts, sanitize.FromGate(opp, result))
		return
	}

	if o.cfg.MaxBatchSize > 0 && len(state.needsLLM) >= o.cfg.MaxBatchSize {
		if !state.capReached {
			state.capReached = true
			o.logger.Warn("Batch size cap reached, remaining survivors fall back to the gate result",
				"cap", o.cfg.MaxBatchSize)
		}
		state.appKnockouts = append(state.appKnockouts, sanitize.FromGate(opp, result))
		return
	}

	state.needsLLM = append(state.needsLLM, pending{
		opp:  opp,
		text: truncateText(opp.CombinedText(), o.cfg.TextLimit),
	})
}

// runLLMPhases submits the batch, optionally polls it, and runs agent
// verification. A non-nil error means the submission itself failed.
func (o *Orchestrator) runLLMPhases(ctx context.Context, state *runState) ([]model.UnifiedRecord, error) {
	requests := make([]llm.BatchRequest, 0, len(state.needsLLM))
	order := make([]string, 0, len(state.needsLLM))
	byCustomID := make(map[string]pending, len(state.needsLLM))
	for i, p := range state.needsLLM {
		customID := fmt.Sprintf("opp-%d-%s", i, p.opp.ID())
		byCustomID[customID] = p
		order = append(order, customID)
		// Model and sampling settings are filled in by the batch client
		// from its own configuration.
		requests = append(requests, llm.BatchRequest{
			CustomID: customID,
			Body: llm.ChatBody{
				Messages: llm.BuildBatchMessages(p.opp, p.text),
			},
		})
	}

	var jobID string
	err := common.WithRetry(ctx, func() error {
		var submitErr error
		jobID, submitErr = o.batch.SubmitBatch(ctx, requests)
		return submitErr
	}, common.FixedRetry(o.cfg.SubmitAttempts, o.cfg.SubmitDelay))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBatchSubmission, err)
	}
	state.meta.BatchJobID = jobID
	o.logger.Info("Batch job submitted", "job_id", jobID, "requests", len(requests))

	if !o.cfg.MonitorBatch {
		o.logger.Info("Batch monitoring disabled, exiting after submission", "job_id", jobID)
		return nil, nil
	}

	job, err := o.batch.WaitForJob(ctx, jobID, func(j llm.BatchJob) {
		o.logger.Info("Batch job progress",
			"status", j.Status,
			"succeeded", j.SucceededRequests,
			"total", j.TotalRequests)
	})
	if err != nil || job.Status != llm.JobStatusSuccess {
		state.meta.Errors++
		o.logger.Error("Batch job did not succeed, persisting gate results only",
			"job_id", jobID, "status", job.Status, "error", err)
		return nil, nil
	}

	results, err := o.batch.JobResults(ctx, job)
	if err != nil {
		state.meta.Errors++
		o.logger.Error("Batch results download failed", "job_id", jobID, "error", err)
		return nil, nil
	}

	return o.mergeAndVerify(ctx, byCustomID, order, results, state), nil
}

// mergeAndVerify merges batch results with original metadata, then sends GO
// and INDETERMINATE records through agent verification. Every submitted
// opportunity produces a record: a survivor whose output line is missing or
// unattributable falls back to INDETERMINATE rather than disappearing.
func (o *Orchestrator) mergeAndVerify(ctx context.Context, byCustomID map[string]pending, order []string, results []model.BatchResult, state *runState) []model.UnifiedRecord {
	matched := make(map[string]model.UnifiedRecord, len(results))
	for _, res := range results {
		p, ok := byCustomID[res.CustomID]
		if !ok {
			o.logger.Warn("Batch result with unknown custom id", "custom_id", res.CustomID)
			continue
		}

		record := sanitize.FromBatch(p.opp, res)
		if o.shouldVerify(record) {
			record = o.verifyOne(ctx, p, record)
		}
		matched[res.CustomID] = record
		o.logger.Info("Assessment complete",
			"solicitation_id", record.SolicitationID,
			"decision", record.Result,
			"stage", record.PipelineStage)
	}

	records := make([]model.UnifiedRecord, 0, len(order))
	for _, customID := range order {
		if record, ok := matched[customID]; ok {
			records = append(records, record)
			continue
		}
		p := byCustomID[customID]
		state.meta.Errors++
		o.logger.Warn("No batch result for submitted opportunity, marking indeterminate",
			"solicitation_id", p.opp.ID(), "custom_id", customID)
		records = append(records, sanitize.FromBatch(p.opp, model.BatchResult{
			CustomID:  customID,
			Decision:  model.DecisionIndeterminate,
			Rationale: "batch result missing or unparseable",
		}))
	}
	return records
}

func (o *Orchestrator) shouldVerify(record model.UnifiedRecord) bool {
	if o.cfg.SkipAgent || o.agent == nil {
		return false
	}
	return record.Result == model.DecisionGo || record.Result == model.DecisionIndeterminate
}

// verifyOne runs one agent verification call. On failure the batch decision
// stands and the error is recorded on the record.
func (o *Orchestrator) verifyOne(ctx context.Context, p pending, record model.UnifiedRecord) model.UnifiedRecord {
	prompt := llm.BuildAgentPrompt(p.opp, p.text, record.Result, record.Rationale)
	result, err := o.agent.Verify(ctx, prompt)
	if err != nil {
		o.logger.Warn("Agent verification failed, keeping batch decision",
			"solicitation_id", record.SolicitationID, "error", err)
	}
	return sanitize.FromAgent(record, result, err)
}

// persist sanitizes nothing further (records are already unified) and writes
// every artifact.
func (o *Orchestrator) persist(state *runState, records []model.UnifiedRecord) (string, error) {
	state.meta.CompletedAt = time.Now()
	dir, err := o.out.WriteRun(records, state.meta)
	if err != nil {
		return dir, err
	}
	summary := output.Summarize(records)
	o.logger.Info("Run complete",
		"run_dir", dir,
		"total", summary.Total,
		"go", summary.Go,
		"no_go", summary.NoGo,
		"indeterminate", summary.Indeterminate)
	return dir, nil
}

func truncateText(text string, limit int) string {
	if limit > 0 && len(text) > limit {
		return text[:limit]
	}
	return text
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sosillc/bidgate/internal/fetch"
	"github.com/sosillc/bidgate/internal/gate"
	"github.com/sosillc/bidgate/internal/llm"
	"github.com/sosillc/bidgate/internal/orchestrator"
	"github.com/sosillc/bidgate/internal/output"
	"github.com/sosillc/bidgate/internal/patterns"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full assessment pipeline",
		Long: `Fetches opportunities for every search id in the endpoints file, runs
the knock-out gate, submits survivors to the batch LLM stage, verifies GO and
INDETERMINATE results with the agent, and writes all run artifacts.`,
		RunE: runPipeline,
	}

	cmd.Flags().String("endpoints", "", "endpoints file (default from config: endpoints.txt)")
	cmd.Flags().Int("max-batch", 0, "cap on opportunities sent to the LLM stages (0 = no cap)")
	cmd.Flags().Bool("skip-agent", false, "skip agent verification")
	cmd.Flags().Bool("monitor", false, "poll the batch job to completion in-process")

	_ = viper.BindPFlag("endpoints_file", cmd.Flags().Lookup("endpoints"))
	_ = viper.BindPFlag("max_batch_size", cmd.Flags().Lookup("max-batch"))
	return cmd
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	skipAgent, _ := cmd.Flags().GetBool("skip-agent")
	monitor, _ := cmd.Flags().GetBool("monitor")
	// Environment toggles take precedence over flags for scripted runs.
	if envTrue(os.Getenv("SKIP_AGENT_VERIFICATION")) {
		skipAgent = true
	}
	if strings.EqualFold(os.Getenv("MONITOR_BATCH"), "y") {
		monitor = true
	}

	pack, err := patterns.LoadOrDefault(viper.GetString("patterns_file"))
	if err != nil {
		return err
	}
	engine := gate.New(pack, gate.Config{
		DisableDeadlineCheck: viper.GetBool("disable_deadline_check"),
	})

	fetcher, err := fetch.NewClient(
		viper.GetString("api_base_url"),
		viper.GetString("api_key"),
	)
	if err != nil {
		return err
	}

	mistral, err := llm.NewMistral(llm.Config{
		APIKey:  viper.GetString("mistral_api_key"),
		Model:   viper.GetString("mistral_model"),
		AgentID: viper.GetString("mistral_agent_id"),
	})
	if err != nil {
		return err
	}
	defer mistral.Close()

	manager := output.NewManager(viper.GetString("output_dir"), slog.Default())

	orch := orchestrator.New(orchestrator.Config{
		EndpointsPath:   viper.GetString("endpoints_file"),
		OutputDir:       viper.GetString("output_dir"),
		TextLimit:       viper.GetInt("text_limit"),
		MaxBatchSize:    viper.GetInt("max_batch_size"),
		DocumentWorkers: viper.GetInt("document_workers"),
		SkipAgent:       skipAgent,
		MonitorBatch:    monitor,
	}, fetcher, engine, mistral, mistral, manager, slog.Default())

	fmt.Println(headerStyle.Render("bidgate assessment pipeline"))

	runDir, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Run complete: " + runDir))
	return nil
}

func envTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

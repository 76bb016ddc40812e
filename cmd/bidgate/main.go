package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sosillc/bidgate/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "bidgate",
		Short: "Federal contracting opportunity assessment pipeline",
		Long: `bidgate screens federal contracting opportunities for a specialty
aviation parts supplier: a deterministic knock-out gate, a bulk LLM
assessment, and per-record agent verification, persisted as flat files.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/bidgate/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(assessCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		common.LogError(err, "Command failed", common.Fields{"command": strings.Join(os.Args[1:], " ")})
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// A local .env is optional; real deployments export variables directly.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/bidgate", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SOS")
	viper.AutomaticEnv()

	// Credentials keep their historical unprefixed names.
	_ = viper.BindEnv("api_key", "HIGHERGOV_API_KEY")
	_ = viper.BindEnv("mistral_api_key", "MISTRAL_API_KEY")
	_ = viper.BindEnv("mistral_model", "MISTRAL_MODEL")
	_ = viper.BindEnv("mistral_agent_id", "MISTRAL_AGENT_ID")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return setupLogging()
}

func setDefaults() {
	viper.SetDefault("endpoints_file", "endpoints.txt")
	viper.SetDefault("output_dir", "SOS_Output")
	viper.SetDefault("patterns_file", "")
	viper.SetDefault("api_base_url", "https://www.highergov.com/api-external")
	viper.SetDefault("text_limit", 400000)
	viper.SetDefault("max_batch_size", 0)
	viper.SetDefault("document_workers", 2)
	viper.SetDefault("disable_deadline_check", false)
}

func setupLogging() error {
	var level slog.Level
	switch viper.GetString("logging.level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return common.SetupLogger(level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bidgate version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("bidgate %s\n", version)
		},
	}
}

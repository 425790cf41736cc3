// Package main provides the race ranker CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/engine"
	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/metrics"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	logLevel    string
	metricsFile string
	log         *logrus.Logger
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ranker",
	Short: "Rank local horse races from index and speed signals",
	Long: `Evaluates race cards through the composite ranking pipeline: missing-value
estimation, admission gating, composite scoring, top-5 ranking and the
field-competitiveness indicator. Focus races can be settled against results.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipConfig"] == "true" {
			return nil
		}
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile (.prom) on exit")

	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.AddCommand(newSettleCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration and builds the logger.
// Logs go to stderr so reports on stdout stay machine-readable.
func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	log = logger.NewLoggerWithOutput(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)
	log.WithFields(logrus.Fields{
		"config":      configFile,
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Debug("Configuration loaded")
	return nil
}

func buildEngine() (*engine.Engine, error) {
	ec, err := engine.FromConfig(&cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return engine.New(ec)
}

// metricsTarget returns where metrics should be written, if anywhere
func metricsTarget() string {
	if metricsFile != "" {
		return metricsFile
	}
	if cfg.Metrics.Enabled {
		return cfg.Metrics.Textfile
	}
	return ""
}

func metricsEnabled() bool {
	return cfg.Metrics.Enabled || metricsFile != ""
}

func flushMetrics() {
	path := metricsTarget()
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.WithError(err).Warn("Failed to write metrics textfile")
		return
	}
	log.WithField("path", path).Debug("Metrics textfile written")
}

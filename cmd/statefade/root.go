package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-drift/statefade/pkg/config"
	"github.com/go-drift/statefade/pkg/errors"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	showMetrics bool
)

var rootCmd = &cobra.Command{
	Use:   "statefade",
	Short: "Render grouped lists and visual-state cross-fades",
	Long: `statefade drives the grouped list widget off-screen: it renders the open
list for a set of items and writes cross-fade frames between two visual
states as PNG files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Path to the statefade YAML file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print animation and projection counters when done")
}

// env is what every command needs: validated config, a logger and
// metrics registered on a private registry.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func setup() (*env, error) {
	logger := logging.New(logging.ParseLevel(logLevel))
	errors.SetHandler(errors.NewLogHandler(logger))

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  metrics.New(reg),
	}, nil
}

// printMetrics writes every counter and histogram count to cmd's output.
func (e *env) printMetrics(cmd *cobra.Command) error {
	if !showMetrics {
		return nil
	}
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(out, "%s_count %d\n", mf.GetName(), m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}

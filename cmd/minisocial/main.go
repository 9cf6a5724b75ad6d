package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/minisocial/internal/config"
	"github.com/HammerMeetNail/minisocial/internal/logging"
	"github.com/HammerMeetNail/minisocial/internal/metrics"
	"github.com/HammerMeetNail/minisocial/internal/scenario"
	"github.com/HammerMeetNail/minisocial/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return NewRootCmd(os.Stdout).ExecuteContext(ctx)
}

type rootOptions struct {
	debug       bool
	showMetrics bool
}

// NewRootCmd constructs the CLI writing user-facing output to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "minisocial",
		Short:         "In-memory social network driven by scripted scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "Print operation counters after the run")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run the built-in two-user walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, scenario.Demo())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a YAML scenario script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()

			script, err := scenario.Parse(f)
			if err != nil {
				return err
			}
			return runScript(cmd, opts, script)
		},
	})

	return rootCmd
}

func runScript(cmd *cobra.Command, opts *rootOptions, script *scenario.Script) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New().SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logging.ParseLevel(cfg.App.LogLevel))
	if opts.debug || cfg.App.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env":         cfg.App.Environment,
			"bcrypt_cost": cfg.Auth.BcryptCost,
		})
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	dir := services.NewDirectory(
		services.NewAuthService(cfg.Auth.BcryptCost),
		services.WithLogger(logger),
		services.WithMetrics(m),
		services.WithTimeFormat(cfg.Feed.TimeFormat),
		services.WithUniqueUsernames(cfg.Social.UniqueUsernames),
		services.WithDedupeRequests(cfg.Social.DedupeFriendRequests),
	)

	runner := scenario.NewRunner(dir, cmd.OutOrStdout(), logger)
	if err := runner.Run(cmd.Context(), script); err != nil {
		return fmt.Errorf("running scenario %q: %w", script.Name, err)
	}
	logger.Info("Scenario completed", map[string]interface{}{"name": script.Name})

	if opts.showMetrics {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "== metrics"); err != nil {
			return err
		}
		return metrics.WriteText(cmd.OutOrStdout(), reg)
	}
	return nil
}

// Package cli wires the command-line surface: a root command that
// initializes configuration and logging, and subcommands for the three
// analysis features, vibe listing, and the local stub backend.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/gateway"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/mapview"
	"github.com/weathervibes/weathervibes/internal/metrics"
	"github.com/weathervibes/weathervibes/internal/panel"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type cliContextKey struct{}

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	BaseURL    string
	LogLevel   string
	Verbose    bool
	NoColor    bool
}

// CLIContext carries the initialized application through the command tree.
type CLIContext struct {
	Config *config.Config
	// ConfigPath is the file the config was loaded from; empty when the
	// configuration came from environment and defaults only.
	ConfigPath string
	Logger     logging.Logger
	Metrics    *metrics.Metrics
	Session    *session.Session
	Gateway    gateway.Gateway
	Adapter    *mapview.Adapter
	Renderer   *textRenderer
	Notifier   panel.Notifier

	Where   *panel.WhereController
	When    *panel.WhenController
	Advisor *panel.AdvisorController
}

// NewRootCommand creates the root command with global flags and the full
// subcommand tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "vibes",
		Short:   "Weather Vibes — find where and when the weather matches your plans",
		Long:    "Weather Vibes scores locations and time windows against weather-based\n\"vibes\" (stargazing, beach days, picnics, …) and asks advisor personas for\nrecommendations, using a remote analysis backend.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: env/defaults)")
	pf.StringVar(&opts.BaseURL, "base-url", "", "analysis backend base URL (overrides config)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newWhereCmd(),
		newWhenCmd(),
		newAdvisorCmd(),
		newVibesCmd(),
		newServeCmd(),
	)
	return cmd
}

// persistentPreRun builds the whole application object graph once and hangs
// it off the command context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	// A .env next to the binary is a developer convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if opts.NoColor {
		color.NoColor = true
	}

	log, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	m := metrics.New()
	sess := session.New(cfg.Map, log)

	gw, err := gateway.New(cfg.Gateway,
		gateway.WithLogger(log),
		gateway.WithMetrics(m),
		gateway.WithUserAgent(fmt.Sprintf("weathervibes-cli/%s", Version)),
	)
	if err != nil {
		return fmt.Errorf("init gateway: %w", err)
	}

	renderer := newTextRenderer(cmd.OutOrStdout(), sess.Viewport.Get())
	adapter, err := mapview.New(renderer, sess, cfg.Map, mapview.SystemClock(), log)
	if err != nil {
		// Widget init failure renders as a static message, not a retry loop.
		fmt.Fprintln(cmd.ErrOrStderr(), "map unavailable:", err)
		return err
	}

	notifier := colorNotifier{out: cmd.OutOrStdout()}

	cliCtx := &CLIContext{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Logger:     log,
		Metrics:    m,
		Session:    sess,
		Gateway:    gw,
		Adapter:    adapter,
		Renderer:   renderer,
		Notifier:   notifier,
		Where:      panel.NewWhere(sess, gw, cfg.Where, notifier, log),
		When:       panel.NewWhen(sess, gw, notifier, log),
		Advisor:    panel.NewAdvisor(sess, gw, notifier, log),
	}

	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// GetCLIContext extracts the initialized application from the command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	cliCtx, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, fmt.Errorf("command context not initialized")
	}
	return cliCtx, nil
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	// Flags beat file and environment.
	if opts.BaseURL != "" {
		cfg.Gateway.BaseURL = opts.BaseURL
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	return cfg, nil
}

func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	logCfg := cfg.Log
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	// Keep structured logs off stdout so they never interleave with the
	// rendered output.
	logCfg.OutputPaths = []string{"stderr"}
	return logging.New(logCfg)
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	cmd := NewRootCommand()
	cmd.SetContext(context.Background())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates bad input from hard failures so scripts can tell the
// two apart: pre-flight validation problems exit 2, everything else 1.
func exitCode(err error) int {
	if errors.IsValidation(err) {
		return 2
	}
	return 1
}

// submitTimeout bounds a single analysis command end to end.
const submitTimeout = 60 * time.Second

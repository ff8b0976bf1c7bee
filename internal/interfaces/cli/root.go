// Package cli implements the gemfluxmcp command-line surface: a cobra root
// command wiring global flags and a small set of subcommands (serve,
// validate-config, version).
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// defaultTimeout is the --timeout flag's default value.
const defaultTimeout = 30 * time.Second

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Timeout    time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
}

// NewRootCommand creates the root cobra command with global flags and
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "gemfluxmcp",
		Short:         "gem-flux-mcp — an MCP tool server for genome-scale metabolic modeling",
		Long:          "gem-flux-mcp exposes draft model construction, two-stage gapfilling,\nflux balance analysis, biochemistry lookup, and pathway reasoning to\nLLM agents over the Model Context Protocol.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (env vars used when empty)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	pf.DurationVar(&opts.Timeout, "timeout", defaultTimeout, "startup operation timeout")

	cmd.AddCommand(
		newServeCmd(opts),
		newValidateConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

// loadConfig loads configuration per opts, honoring the priority
// flags > env > file > defaults already implemented by config.Load.
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
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	return cfg, nil
}

// buildLogger constructs the process logger from cfg.Log.
func buildLogger(cfg *config.Config) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

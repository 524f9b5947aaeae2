package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendy/internal/config"
	"trendy/internal/logger"
)

// rootOptions holds flags shared by every subcommand
type rootOptions struct {
	configFile string
	logLevel   string
}

// load reads configuration with the given overrides and configures logging.
func (o *rootOptions) load(overrides map[string]any) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(o.configFile, overrides)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger.Configure(level, cfg.Logging.Format, os.Stderr)

	if cfg.App.ConfigFile != "" {
		logger.Debug("using config file", "path", cfg.App.ConfigFile)
	}
	return cfg, nil
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "trendy",
		Short: "Trendy suggests trending cafe, restaurant and park combinations for a city.",
		Long: `Trendy searches the web for trending cafes, restaurants and parks in a city,
asks a language model to combine them into short Arabic reports, and shows the
result in the terminal, an interactive TUI or a small web page.

Examples:
  # Generate reports for the configured city
  trendy report

  # Let the model pick places itself, without web search
  trendy report --mode ungrounded --city Jeddah

  # Browse results interactively
  trendy tui

  # Serve the web page and JSON API
  trendy serve --port 8080`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./.trendy.yaml or $HOME/.trendy.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(NewReportCmd(opts))
	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewServeCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOverrides converts the shared --mode and --city flags into config overrides.
func runOverrides(mode, city string) map[string]any {
	overrides := map[string]any{}
	if mode != "" {
		overrides["app.mode"] = mode
	}
	if city != "" {
		overrides["app.city"] = city
	}
	return overrides
}

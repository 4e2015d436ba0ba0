// Package main provides the entry point for the weeklyreport CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/weeklyreport/internal/config"
	"github.com/nao1215/weeklyreport/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for weeklyreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeklyreport",
		Short: "Generate and preview the weekly construction industry report",
		Long: `weeklyreport fills a fixed HTML report template with the week's data.

The template already contains every section (sec1..sec6) with sample rows.
generate replaces the sample rows, list items and summary with the content
of a JSON data file, update edits single regions of an existing report, and
serve previews the result in a browser.

Settings are read from a .weeklyreport file in the current or home directory
(see 'weeklyreport init'). Command-line flags take precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .weeklyreport in current or home directory)")
	cmd.PersistentFlags().String("log-format", logFormatText,
		"Log record format on stderr (text or json)")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewUpdateCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// Log formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// getLogFormatFlag retrieves the log format flag from the command or its parent.
func getLogFormatFlag(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format, err = cmd.Root().PersistentFlags().GetString("log-format")
		if err != nil {
			return logFormatText
		}
	}
	return format
}

// setupLogger creates the stderr logger for cmd.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	return newLogger(os.Stderr, verbose, getLogFormatFlag(cmd))
}

// newLogger creates a logger writing records in format to w.
// An unknown format falls back to text and is reported as a warning.
func newLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	switch format {
	case logFormatJSON:
		return log.NewJSONLogger(w, verbose)
	case logFormatText, "":
		return log.NewLogger(w, verbose)
	default:
		logger := log.NewLogger(w, verbose)
		logger.Warn("unknown log format, using text", "format", format)
		return logger
	}
}

// loadConfig creates a Config from the defaults and the configuration file.
// If the user explicitly specified a config file, a missing file is an error.
// Otherwise the built-in defaults are used when no file is found.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = getConfigFlag(cmd)

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(cf)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}

// stringFlag copies a string flag into dst when the user set it.
// Unset flags leave the value from the configuration file in place.
func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// intFlag copies an int flag into dst when the user set it.
func intFlag(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/weeklyreport/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report directory over HTTP for preview",
		Long: `Serve starts a local HTTP server for the report directory and opens
the tracking page in the default browser.

Every response disables browser caching, so a regenerated report shows up
on reload. Stop the server with Ctrl+C.

Examples:
  # Serve the current directory on port 8000
  weeklyreport serve

  # Serve another directory on port 9000 without opening a browser
  weeklyreport serve -r ./out -p 9000 -n`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().IntP("port", "p", server.DefaultPort, "Port to listen on")
	cmd.Flags().StringP("root", "r", ".", "Directory to serve")
	cmd.Flags().StringP("open", "o", "", "File to open in the browser (default: configured open_file)")
	cmd.Flags().BoolP("no-browser", "n", false, "Do not open a browser")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := intFlag(cmd, "port", &cfg.Port); err != nil {
		return err
	}
	if err := stringFlag(cmd, "root", &cfg.Root); err != nil {
		return err
	}
	if err := stringFlag(cmd, "open", &cfg.OpenFile); err != nil {
		return err
	}
	cfg.NoBrowser, err = cmd.Flags().GetBool("no-browser")
	if err != nil {
		return err
	}

	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	opts := []server.Option{
		server.WithRoot(cfg.Root),
		server.WithPort(cfg.Port),
		server.WithOpenFile(cfg.OpenFile),
		server.WithOutput(cmd.OutOrStdout()),
		server.WithLogger(logger),
	}
	if cfg.NoBrowser {
		opts = append(opts, server.WithBrowserOpener(nil))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(opts...).Run(ctx); err != nil {
		if errors.Is(err, server.ErrPortInUse) {
			return fmt.Errorf("错误: 端口 %d 已被占用，请关闭占用该端口的程序，或使用 --port 指定其他端口: %w", cfg.Port, err)
		}
		return fmt.Errorf("错误: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/weeklyreport/internal/config"
	"github.com/nao1215/weeklyreport/internal/database"
	"github.com/nao1215/weeklyreport/internal/generator"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/report"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [json_path] [output_path]",
		Short: "Generate the weekly report from a JSON data file",
		Long: `Generate reads the week's JSON data and fills the report template.

Each section of the template (sec1..sec6) is filled from its JSON key.
Sections whose data is empty, or whose first entry still carries the
template's sample text, are left unchanged. After at least one section has
been filled, the instructional notice box is removed.

Errors are printed and the command still exits with status 0, so the
command can run unattended from schedulers that treat a failure as fatal.

Examples:
  # Use the default data file and output path
  weeklyreport generate

  # Use a specific data file and output path
  weeklyreport generate news.json report.html

  # Use a GB18030 template and keep a history of runs
  weeklyreport generate -t template.html -e gb18030 --save-history

  # Also write a Markdown digest and print the run summary as JSON
  weeklyreport generate -m digest.md -j`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("template", "t", config.DefaultTemplatePath,
		"HTML template to fill")
	cmd.Flags().StringP("encoding", "e", "utf-8",
		"Charset of the template and output (utf-8, gb18030, gbk)")
	cmd.Flags().StringP("synthesis-fallback", "S", "",
		"Rendering of synthesis points without a title (plain or numbered)")

	// Output flags
	cmd.Flags().StringP("markdown", "m", "",
		"Also write a Markdown digest of the data to this path")
	cmd.Flags().BoolP("summary-json", "j", false,
		"Print the run summary as JSON")

	// History flags
	cmd.Flags().BoolP("save-history", "s", false,
		"Record the run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runGenerateCmd executes the generate command.
// Every failure, including an unreadable config file, is printed as one
// error line and the command still succeeds.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := buildGenerateConfig(cmd, args)
	if err != nil {
		fmt.Fprintln(out, describeGenerateError(err))
		return nil
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(out, describeGenerateError(fmt.Errorf("configuration error: %w", err)))
		return nil
	}

	logger := setupLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runGenerate(ctx, out, cfg, logger); err != nil {
		fmt.Fprintln(out, describeGenerateError(err))
	}
	return nil
}

// buildGenerateConfig creates a Config from the configuration file, cobra
// flags and positional arguments, in increasing order of precedence.
// Arguments after the output path are ignored.
func buildGenerateConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := stringFlag(cmd, "template", &cfg.TemplatePath); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "encoding", &cfg.Encoding); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "synthesis-fallback", &cfg.SynthesisFallback); err != nil {
		return nil, err
	}
	if err := stringFlag(cmd, "db-dir", &cfg.DBDir); err != nil {
		return nil, err
	}

	cfg.MarkdownFile, err = cmd.Flags().GetString("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SummaryJSON, err = cmd.Flags().GetBool("summary-json")
	if err != nil {
		return nil, err
	}

	cfg.SaveHistory, err = cmd.Flags().GetBool("save-history")
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.DataPath = args[0]
	}
	if len(args) > 1 {
		cfg.OutputPath = args[1]
	}

	return cfg, nil
}

// runGenerate fills the template and writes the requested side outputs.
func runGenerate(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	sections := cfg.Sections()
	gen := generator.New(
		generator.WithLogger(logger),
		generator.WithSections(sections),
		generator.WithSynthesisStyle(cfg.GeneratorSynthesisStyle()),
		generator.WithMetaPrefix(cfg.MetaPrefix),
		generator.WithEncoding(cfg.Encoding),
	)

	rep, err := gen.Generate(ctx, generator.Paths{
		Template: cfg.TemplatePath,
		Data:     cfg.DataPath,
		Output:   cfg.OutputPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "周报已生成：%s\n", cfg.OutputPath)

	var jsonOpts []report.FullJSONWriterOption
	if cfg.SaveHistory {
		digest, unchanged, err := saveGeneration(ctx, cfg, gen, rep, logger)
		if err != nil {
			logger.Error("failed to save generation", "output", rep.OutputPath, "error", err)
		} else {
			jsonOpts = append(jsonOpts, report.WithDigest(digest, unchanged))
			if unchanged {
				fmt.Fprintln(out, "输出与上次生成相同")
			}
		}
	}

	var writers []report.Writer
	if cfg.MarkdownFile != "" {
		f, err := createMarkdownFile(cfg.MarkdownFile)
		if err != nil {
			return err
		}
		defer f.Close()
		writers = append(writers, report.NewMarkdownWriter(f, report.WithMarkdownSections(sections)))
	}

	switch {
	case cfg.SummaryJSON:
		writers = append(writers, report.NewFullJSONWriter(out, getVersion(),
			[]report.JSONWriterOption{report.WithPrettyPrint()}, jsonOpts...))
	case cfg.Verbose:
		writers = append(writers, report.NewSimpleWriter(out,
			report.WithVerbose(true), report.WithSections(sections)))
	}

	if len(writers) > 0 {
		if _, err := report.NewMultiWriter(writers...).Write(rep); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	fmt.Fprintln(out, "✓ 周报生成成功！")
	return nil
}

// saveGeneration records the run and reports whether the written document
// is identical to the previous run for the same output path.
func saveGeneration(ctx context.Context, cfg *config.Config, gen *generator.Generator, rep *model.Report, logger *slog.Logger) (string, bool, error) {
	content, err := gen.Encode(rep)
	if err != nil {
		return "", false, err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return "", false, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	digest := database.Digest(content)
	prev, err := db.LatestForOutput(ctx, rep.OutputPath)
	if err != nil {
		return "", false, err
	}
	unchanged := prev != nil && prev.Digest == digest

	id, err := db.SaveGeneration(ctx, rep, content)
	if err != nil {
		return "", false, err
	}

	logger.Debug("generation saved", "id", id, "digest", digest, "unchanged", unchanged)
	return digest, unchanged, nil
}

// createMarkdownFile creates the Markdown digest file and its directory.
func createMarkdownFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create markdown directory: %w", err)
		}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown file: %w", err)
	}
	return f, nil
}

// describeGenerateError formats err as the one-line message shown to the user.
func describeGenerateError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, os.ErrNotExist):
		return "✗ 错误：文件未找到 - " + err.Error()
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return "✗ 错误：JSON格式错误 - " + err.Error()
	default:
		return "✗ 错误：" + err.Error()
	}
}

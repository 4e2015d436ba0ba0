package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/weeklyreport/internal/database"
	"github.com/nao1215/weeklyreport/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command lists generation runs recorded with 'generate --save-history'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs",
		Long: `History lists the generation runs recorded in the history database.

Runs are recorded by 'weeklyreport generate --save-history'. Each entry shows
the report date, the output file, the sections that were filled and the
first characters of the SHA3-256 digest of the written document, so reruns
that produced an identical report are easy to spot.

Examples:
  # List the 20 most recent runs
  weeklyreport history

  # List every run as JSON
  weeklyreport history -n 0 -j

  # Show the stored summary of run 5
  weeklyreport history --id 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64P("id", "i", 0, "Show the stored run summary with this ID")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "db-dir", &cfg.DBDir); err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No generation runs recorded.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'weeklyreport generate --save-history' to record runs.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if id > 0 {
		return showGeneration(ctx, out, db, id)
	}
	return listGenerations(ctx, out, db, limit, jsonOutput)
}

// showGeneration prints the stored run summary of one generation.
func showGeneration(ctx context.Context, out io.Writer, db *database.HistoryDB, id int64) error {
	gen, err := db.GetGenerationByID(ctx, id)
	if err != nil {
		return err
	}
	if gen == nil {
		return fmt.Errorf("generation with ID %d not found", id)
	}

	rep, err := db.GetReportByID(ctx, id)
	if err != nil {
		return err
	}

	w := report.NewFullJSONWriter(out, getVersion(),
		[]report.JSONWriterOption{report.WithPrettyPrint()},
		report.WithDigest(gen.Digest, false),
	)
	_, err = w.Write(rep)
	return err
}

// listGenerations prints the most recent runs, newest first.
func listGenerations(ctx context.Context, out io.Writer, db *database.HistoryDB, limit int, jsonOutput bool) error {
	gens, err := db.ListGenerations(ctx, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(gens)
	}

	if len(gens) == 0 {
		fmt.Fprintln(out, "No generation runs recorded.")
		fmt.Fprintln(out, "\nUse 'weeklyreport generate --save-history' to record runs.")
		return nil
	}

	fmt.Fprintf(out, "Generation history (%d runs):\n\n", len(gens))
	fmt.Fprintf(out, "  %-6s  %-19s  %-10s  %-12s  %-24s  %s\n", "ID", "Recorded", "Date", "Digest", "Populated", "Output")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 100))

	for _, g := range gens {
		fmt.Fprintf(out, "  %-6d  %-19s  %-10s  %-12s  %-24s  %s\n",
			g.ID,
			g.Timestamp.Format("2006-01-02 15:04:05"),
			g.ReportDate,
			shortDigest(g.Digest),
			formatSections(g.Populated),
			g.OutputPath,
		)
	}

	fmt.Fprintln(out, "\nUse 'weeklyreport history --id <id>' to see the stored summary of a run.")
	return nil
}

// shortDigest returns the first 12 characters of a digest.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

// formatSections formats a list of section ids for the history table.
func formatSections(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ",")
}

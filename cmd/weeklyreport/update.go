package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/weeklyreport/internal/config"
	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/updater"
	"github.com/spf13/cobra"
)

// editFunc applies one update to the document content.
type editFunc func(u *updater.Updater, html string) string

// NewUpdateCmd creates the update command and its subcommands.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a single region of an existing report",
		Long: `Update edits one region of an already generated report in place.

Unlike generate, update does not check for sample data: the given rows or
points always replace the region. A missing section or region is reported
as a warning and the document is written back unchanged.

Examples:
  # Replace the rows of section 2
  weeklyreport update table -s sec2 -r industry.json

  # Set the summary callout of section 1
  weeklyreport update summary -s sec1 -T "本周需求回暖"

  # Replace the synthesis list
  weeklyreport update synthesis "趋势：需求上升" "价格：租金企稳"

  # Replace the watchlist and write to a new file
  weeklyreport update watchlist -i watchlist.json -o report_v2.html`,
	}

	cmd.PersistentFlags().StringP("file", "f", "",
		"Report to update (default: configured output path)")
	cmd.PersistentFlags().StringP("output", "o", "",
		"Write the updated report here instead of overwriting --file")
	cmd.PersistentFlags().StringP("encoding", "e", "utf-8",
		"Charset of the report (utf-8, gb18030, gbk)")

	cmd.AddCommand(newUpdateTableCmd())
	cmd.AddCommand(newUpdateSummaryCmd())
	cmd.AddCommand(newUpdateSynthesisCmd())
	cmd.AddCommand(newUpdateWatchlistCmd())

	return cmd
}

func newUpdateTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Replace the table rows of a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sectionID, err := cmd.Flags().GetString("section")
			if err != nil {
				return err
			}
			columns, err := cmd.Flags().GetStringSlice("columns")
			if err != nil {
				return err
			}
			data, err := readFlagFile(cmd, "rows")
			if err != nil {
				return err
			}
			var rows []model.Record
			if err := decodeFlagJSON("rows", data, &rows); err != nil {
				return err
			}
			// The rows decoded, so only a null document fails here and it has no keys.
			keys, _ := model.RowKeys(data) //nolint:errcheck // see above
			return runUpdate(cmd, func(u *updater.Updater, html string) string {
				cols := columns
				// Sections without configured columns keep the key order of the first row.
				if len(cols) == 0 && u.SectionColumns(sectionID) == nil {
					cols = keys
				}
				return u.UpdateSectionTable(html, sectionID, rows, cols...)
			})
		},
	}

	cmd.Flags().StringP("section", "s", "", "Section id (sec1..sec6)")
	cmd.Flags().StringP("rows", "r", "", "JSON file with an array of row objects")
	cmd.Flags().StringSlice("columns", nil,
		"Column order (default: the section's columns, else the key order of the first row)")
	_ = cmd.MarkFlagRequired("section") //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("rows")    //nolint:errcheck // flag is defined above

	return cmd
}

func newUpdateSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Set the summary callout of a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sectionID, err := cmd.Flags().GetString("section")
			if err != nil {
				return err
			}
			text, err := cmd.Flags().GetString("text")
			if err != nil {
				return err
			}
			return runUpdate(cmd, func(u *updater.Updater, html string) string {
				return u.UpdateSummary(html, sectionID, text)
			})
		},
	}

	cmd.Flags().StringP("section", "s", model.SectionProjects, "Section id (sec1..sec6)")
	cmd.Flags().StringP("text", "T", "", "Summary text")
	_ = cmd.MarkFlagRequired("text") //nolint:errcheck // flag is defined above

	return cmd
}

func newUpdateSynthesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesis [point...]",
		Short: "Replace the synthesis list",
		Long: `Replace the items of the synthesis list (sec5).

Points are taken from the arguments, or from a JSON array of strings given
with --points. A point of the form "标题：正文" gets a bold title; other
points are numbered unless synthesis_fallback is set to plain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			points := args
			if cmd.Flags().Changed("points") {
				if err := readJSONFlag(cmd, "points", &points); err != nil {
					return err
				}
			}
			if len(points) == 0 {
				return errors.New("no synthesis points given (pass them as arguments or with --points)")
			}
			return runUpdate(cmd, func(u *updater.Updater, html string) string {
				return u.UpdateSynthesis(html, points)
			})
		},
	}

	cmd.Flags().StringP("points", "p", "", "JSON file with an array of points")

	return cmd
}

func newUpdateWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Replace the watchlist rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var items []model.Record
			if err := readJSONFlag(cmd, "items", &items); err != nil {
				return err
			}
			return runUpdate(cmd, func(u *updater.Updater, html string) string {
				return u.UpdateWatchlist(html, items)
			})
		},
	}

	cmd.Flags().StringP("items", "i", "", "JSON file with an array of {focus, timing, impact} objects")
	_ = cmd.MarkFlagRequired("items") //nolint:errcheck // flag is defined above

	return cmd
}

// runUpdate reads the report, applies edit and writes the result.
func runUpdate(cmd *cobra.Command, edit editFunc) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "encoding", &cfg.Encoding); err != nil {
		return err
	}

	input := cfg.OutputPath
	if err := stringFlag(cmd, "file", &input); err != nil {
		return err
	}
	output := input
	if err := stringFlag(cmd, "output", &output); err != nil {
		return err
	}

	if !document.IsUTF8(cfg.Encoding) {
		if _, err := document.LookupEncoding(cfg.Encoding); err != nil {
			return fmt.Errorf("configuration error: %w: %q", config.ErrUnknownEncoding, cfg.Encoding)
		}
	}

	logger := setupLogger(cmd, cfg.Verbose)

	raw, err := os.ReadFile(filepath.Clean(input))
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	html, err := document.Decode(raw, cfg.Encoding)
	if err != nil {
		return err
	}

	u := updater.New(
		updater.WithLogger(logger),
		updater.WithSections(cfg.Sections()),
		updater.WithSynthesisStyle(cfg.UpdaterSynthesisStyle()),
	)
	updated := edit(u, string(html))

	encoded, err := document.Encode([]byte(updated), cfg.Encoding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, encoded, 0644); err != nil { //nolint:gosec // the report is served to a browser
		return fmt.Errorf("failed to write report: %w", err)
	}

	if updated == string(html) {
		fmt.Fprintf(cmd.OutOrStdout(), "未修改：%s\n", output)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已更新：%s\n", output)
	return nil
}

// readJSONFlag decodes the JSON file named by the flag into v.
func readJSONFlag(cmd *cobra.Command, name string, v any) error {
	data, err := readFlagFile(cmd, name)
	if err != nil {
		return err
	}
	return decodeFlagJSON(name, data, v)
}

// readFlagFile reads the file named by the flag.
func readFlagFile(cmd *cobra.Command, name string) ([]byte, error) {
	path, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read --%s: %w", name, err)
	}
	return data, nil
}

func decodeFlagJSON(name string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode --%s: %w", name, err)
	}
	return nil
}

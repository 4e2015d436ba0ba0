package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/weeklyreport/internal/model"
)

// MarkdownWriter outputs a Markdown digest of the week's data.
// The digest lists every populated section as a table or list, so the
// report can be shared where HTML cannot be pasted.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// sections supplies the section titles, keys and columns.
	sections []model.SectionSpec
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownSections sets the section layout of the digest.
func WithMarkdownSections(sections []model.SectionSpec) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.sections = sections
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		sections:   model.DefaultSections(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the digest in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeOverview(md, report)
	for _, spec := range w.sections {
		w.writeSection(md, report, spec)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the digest title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("建筑业周报 " + report.ReportDate)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Report Date", report.ReportDate},
			{"Template", "`" + report.TemplatePath + "`"},
			{"Data", "`" + report.DataPath + "`"},
			{"Output", "`" + report.OutputPath + "`"},
			{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

// writeOverview writes the entry counts and an alert about the run state.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, report *model.Report) {
	md.H2("Overview")
	md.PlainText("")

	rows := make([][]string, 0, len(w.sections))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Entries per Section"),
		piechart.WithShowData(true),
	)
	charted := 0
	for _, spec := range w.sections {
		n := 0
		status := "➖ Unchanged"
		if report.IsPopulated(spec.ID) {
			n = sectionRows(report.Data, spec)
			status = "✅ Updated"
		}
		rows = append(rows, []string{spec.Title, strconv.Itoa(n), status})
		if n > 0 {
			chart.LabelAndIntValue(spec.Title, uint64(n))
			charted++
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Section", "Entries", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if charted > 1 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case report.ErrorMessage != "":
		md.Cautionf("Generation failed: %s", report.ErrorMessage)
	case len(report.Warnings) > 0:
		md.Warningf("%d warning(s): %s", len(report.Warnings), strings.Join(report.Warnings, "; "))
	case !report.HasPopulated():
		md.Note("No section received data this week. The template was left as is.")
	default:
		md.Tip("All sections with data were updated.")
	}
	md.PlainText("")
}

// writeSection writes one populated section.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, report *model.Report, spec model.SectionSpec) {
	if !report.IsPopulated(spec.ID) {
		return
	}

	md.H2(spec.Title)
	md.PlainText("")

	if spec.Kind == model.SectionKindList {
		points := report.Data.Points(spec.Key)
		items := make([]string, len(points))
		for i, p := range points {
			items[i] = cell(p)
		}
		md.OrderedList(items...)
		md.PlainText("")
		return
	}

	records := report.Data.Records(spec.Key)
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(spec.Columns))
		for j, col := range spec.Columns {
			row[j] = cell(rec.Get(col))
		}
		rows[i] = row
	}
	md.Table(markdown.TableSet{
		Header: spec.Columns,
		Rows:   rows,
	})
	md.PlainText("")

	if summary := report.Data.Summary(spec.ID); summary != "" {
		md.PlainText("**小结：** " + cell(summary))
		md.PlainText("")
	}
}

// writeFooter writes the digest footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Digest generated by weeklyreport*")
}

// cell makes a value safe for a single Markdown table cell or list item.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	if s == "" {
		return "-"
	}
	return s
}

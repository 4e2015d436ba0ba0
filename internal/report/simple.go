package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/weeklyreport/internal/model"
)

// SimpleWriter outputs a human-readable run summary.
// This format is designed for terminal display after a generation run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
type SimpleWriter struct {
	baseWriter

	// sections supplies the section titles and keys.
	sections []model.SectionSpec

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with the executed steps.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithSections sets the section layout used for titles and row counts.
func WithSections(sections []model.SectionSpec) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.sections = sections
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		sections:   model.DefaultSections(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSections(&sb, report)
	w.writeWarnings(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary header with file information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      WEEKLY REPORT GENERATION\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Template:     %s\n", report.TemplatePath)
	fmt.Fprintf(sb, "Data:         %s\n", report.DataPath)
	fmt.Fprintf(sb, "Output:       %s\n", report.OutputPath)
	fmt.Fprintf(sb, "Report Date:  %s\n", report.ReportDate)
	fmt.Fprintf(sb, "Generated At: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	if report.ErrorMessage != "" {
		fmt.Fprintf(sb, "Status:       ERROR - %s\n", report.ErrorMessage)
	} else {
		sb.WriteString("Status:       Complete\n")
	}

	sb.WriteString("\n")
}

// writeSections lists every section with its outcome.
func (w *SimpleWriter) writeSections(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SECTIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, spec := range w.sections {
		if report.IsPopulated(spec.ID) {
			fmt.Fprintf(sb, "  [+] %s %s (%d entries)\n", spec.ID, spec.Title, sectionRows(report.Data, spec))
			continue
		}
		fmt.Fprintf(sb, "  [-] %s %s (unchanged)\n", spec.ID, spec.Title)
	}
	sb.WriteString("\n")

	if report.NoticeRemoved {
		sb.WriteString("  Notice box removed\n\n")
	}
}

// writeWarnings writes the non-fatal problems of the run.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.Report) {
	if len(report.Warnings) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WARNINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, warning := range report.Warnings {
		fmt.Fprintf(sb, "  * %s\n", warning)
	}
	sb.WriteString("\n")
}

// writeFooter writes the summary footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	if w.verbose && len(report.PerformedSteps) > 0 {
		fmt.Fprintf(sb, "Steps: %s\n", strings.Join(report.PerformedSteps, ", "))
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

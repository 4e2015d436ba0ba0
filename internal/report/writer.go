package report

import (
	"io"

	"github.com/nao1215/weeklyreport/internal/model"
)

// Writer renders one view of a finished generation run: the filled
// document, a Markdown digest or a run summary.
type Writer interface {
	// Write renders report and returns the number of bytes written.
	Write(report *model.Report) (int, error)
}

// MultiWriter renders the same run through several Writers in order.
// generate uses it for the Markdown digest plus the terminal summary.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders report with each Writer and returns the total byte count.
// It stops at the first failing Writer.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sectionRows returns the number of entries supplied for a section.
func sectionRows(data *model.ReportData, spec model.SectionSpec) int {
	if spec.Kind == model.SectionKindList {
		return len(data.Points(spec.Key))
	}
	return len(data.Records(spec.Key))
}

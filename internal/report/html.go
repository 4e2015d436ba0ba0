package report

import (
	"io"

	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
)

// HTMLWriter outputs the generated document.
// The document is held as UTF-8 and converted to the configured charset on
// write, so templates saved as GB18030 come back out as GB18030.
type HTMLWriter struct {
	baseWriter

	// encoding is the charset of the written document.
	encoding string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithEncoding sets the charset of the written document.
func WithEncoding(name string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.encoding = name
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		encoding:   document.DefaultEncoding,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Encode returns the report's document in the writer's charset.
func (w *HTMLWriter) Encode(report *model.Report) ([]byte, error) {
	return document.Encode(report.HTML, w.encoding)
}

// Write outputs the document.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	data, err := w.Encode(report)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}

package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/weeklyreport/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in JSON format.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	return w.writeJSON(report)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport is a wrapper for the run summary with additional metadata.
//
// Design decision: We wrap the report rather than modifying model.Report
// because this allows us to add output-specific fields without polluting
// the core data structure.
type JSONReport struct {
	// Version is the weeklyreport version that generated this report.
	Version string `json:"version"`

	// Report is the run summary.
	Report *model.Report `json:"report"`

	// Digest is the SHA3-256 digest of the written document, if known.
	Digest string `json:"digest,omitempty"`

	// Unchanged is true when the digest matches the previous run for the same output.
	Unchanged bool `json:"unchanged,omitempty"`
}

// FullJSONWriter outputs run summaries with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the weeklyreport version string.
	version string

	// digest is the output digest included in the wrapper.
	digest string

	// unchanged reports that the output matches the previous run.
	unchanged bool
}

// FullJSONWriterOption configures a FullJSONWriter.
type FullJSONWriterOption func(*FullJSONWriter)

// WithDigest includes the output digest in the wrapper.
func WithDigest(digest string, unchanged bool) FullJSONWriterOption {
	return func(w *FullJSONWriter) {
		w.digest = digest
		w.unchanged = unchanged
	}
}

// NewFullJSONWriter creates a writer for run summaries with metadata.
func NewFullJSONWriter(output io.Writer, version string, jsonOpts []JSONWriterOption, opts ...FullJSONWriterOption) *FullJSONWriter {
	w := &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, jsonOpts...),
		version:    version,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary wrapped with metadata.
func (w *FullJSONWriter) Write(report *model.Report) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:   w.version,
		Report:    report,
		Digest:    w.digest,
		Unchanged: w.unchanged,
	})
}

// Package report provides output functionality for generation runs.
//
// This package contains writers for different output formats:
//   - HTMLWriter: The generated document, encoded in the configured charset
//   - SimpleWriter: Human-readable run summary for terminal display
//   - JSONWriter: Structured JSON run summary for tool integration
//   - MarkdownWriter: Markdown digest of the week's data for chat and wikis
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report

package model

import (
	"slices"
	"time"
)

// Report is the state of a single generation run.
// It is created once per run, mutated by each pipeline step and finally
// handed to the report writers and the history database.
//
// Design decision: The HTML document is carried as raw bytes rather than a
// parsed tree. Each step re-locates its regions, so a step never works on
// offsets that an earlier step invalidated.
type Report struct {
	// TemplatePath is the HTML template the document was read from.
	TemplatePath string `json:"template_path"`

	// DataPath is the JSON data file.
	DataPath string `json:"data_path"`

	// OutputPath is where the generated document is written.
	OutputPath string `json:"output_path"`

	// GeneratedAt is the wall-clock time the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// ReportDate is the date written into the document header.
	ReportDate string `json:"report_date"`

	// Data is the decoded input.
	Data *ReportData `json:"-"`

	// HTML is the current document content (UTF-8).
	HTML []byte `json:"-"`

	// Populated lists the ids of sections filled with real data, in template order.
	Populated []string `json:"populated"`

	// Skipped lists the ids of sections left unchanged.
	Skipped []string `json:"skipped"`

	// Warnings collects non-fatal problems such as missing template markers.
	Warnings []string `json:"warnings,omitempty"`

	// PerformedSteps records the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps"`

	// NoticeRemoved is true if the instructional notice box was removed.
	NoticeRemoved bool `json:"notice_removed"`

	// Error holds the last step error, if any.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewReport creates a Report for the given input and template content.
func NewReport(data *ReportData, html []byte) *Report {
	if data == nil {
		data = &ReportData{}
	}
	return &Report{
		Data:           data,
		HTML:           html,
		GeneratedAt:    time.Now(),
		Populated:      make([]string, 0),
		Skipped:        make([]string, 0),
		PerformedSteps: make([]string, 0),
	}
}

// MarkPopulated records that a section was filled with real data.
func (r *Report) MarkPopulated(sectionID string) {
	if !slices.Contains(r.Populated, sectionID) {
		r.Populated = append(r.Populated, sectionID)
	}
}

// MarkSkipped records that a section was left unchanged.
func (r *Report) MarkSkipped(sectionID string) {
	if !slices.Contains(r.Skipped, sectionID) {
		r.Skipped = append(r.Skipped, sectionID)
	}
}

// AddWarning records a non-fatal problem.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasPopulated reports whether at least one section received real data.
func (r *Report) HasPopulated() bool {
	return len(r.Populated) > 0
}

// IsPopulated reports whether the given section received real data.
func (r *Report) IsPopulated(sectionID string) bool {
	return slices.Contains(r.Populated, sectionID)
}

// Fail records err as the error that ended the run.
func (r *Report) Fail(err error) {
	r.Error = err
	r.ErrorMessage = err.Error()
}

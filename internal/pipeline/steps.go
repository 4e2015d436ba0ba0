package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/render"
)

// DefaultMetaPrefix is the literal text that precedes the report date in the
// document header.
const DefaultMetaPrefix = `<div class="meta">Market Research Team @ `

// DateLayout is the format of the report date.
const DateLayout = "2006-01-02"

// replaceRegion replaces the inner content of a block and classifies failures.
// A missing section is a warning recorded on the report, a missing block is
// skipped silently. It reports whether the document changed.
func replaceRegion(logger *slog.Logger, report *model.Report, sectionID string, kind document.BlockKind, content string) (bool, error) {
	out, err := document.ReplaceInner(report.HTML, sectionID, kind, content)
	switch {
	case err == nil:
		report.HTML = out
		return true, nil
	case errors.Is(err, document.ErrSectionNotFound):
		logger.Warn("section not found in template", "section", sectionID)
		report.AddWarning(fmt.Sprintf("section %s not found in template", sectionID))
		return false, nil
	case errors.Is(err, document.ErrBlockNotFound):
		logger.Debug("block not found, skipping", "section", sectionID, "block", kind.String())
		return false, nil
	default:
		return false, fmt.Errorf("failed to update %s in %s: %w", kind, sectionID, err)
	}
}

// DateStep writes the report date into the document header.
// The date comes from report_period.report_date, or today when it is empty.
type DateStep struct {
	// prefix is the literal text that directly precedes the date.
	prefix string

	// now returns the current time. Replaced in tests.
	now func() time.Time

	// logger for structured logging.
	logger *slog.Logger
}

// DateStepOption configures a DateStep.
type DateStepOption func(*DateStep)

// WithDatePrefix sets the literal text that precedes the date.
func WithDatePrefix(prefix string) DateStepOption {
	return func(s *DateStep) {
		s.prefix = prefix
	}
}

// WithDateClock sets the clock used when the data carries no date.
func WithDateClock(now func() time.Time) DateStepOption {
	return func(s *DateStep) {
		s.now = now
	}
}

// WithDateLogger sets a custom logger for the date step.
func WithDateLogger(logger *slog.Logger) DateStepOption {
	return func(s *DateStep) {
		s.logger = logger
	}
}

// NewDateStep creates a new date substitution step.
func NewDateStep(opts ...DateStepOption) *DateStep {
	s := &DateStep{
		prefix: DefaultMetaPrefix,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *DateStep) Name() string {
	return "report_date"
}

// Do executes the date step.
func (s *DateStep) Do(_ context.Context, report *model.Report) error {
	// An empty report_date is treated like an absent one; the header
	// never loses its date.
	date := report.Data.ReportPeriod.ReportDate
	if date == "" {
		date = s.now().Format(DateLayout)
	}
	report.ReportDate = date

	out, found := document.ReplaceDate(report.HTML, s.prefix, date)
	if !found {
		s.logger.Warn("report date marker not found", "prefix", s.prefix)
		report.AddWarning("report date marker not found")
		return nil
	}
	report.HTML = out
	return nil
}

// TableSectionStep fills the table body of one section with the records
// stored under the section's JSON key.
//
// The section is left untouched when the data is empty or its first record
// still carries the instructional placeholder.
type TableSectionStep struct {
	// spec describes the section's key, columns and placeholder.
	spec model.SectionSpec

	// logger for structured logging.
	logger *slog.Logger
}

// NewTableSectionStep creates a step for the given table section.
func NewTableSectionStep(spec model.SectionSpec, logger *slog.Logger) *TableSectionStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableSectionStep{spec: spec, logger: logger}
}

// Name returns the step name.
func (s *TableSectionStep) Name() string {
	return "table_" + s.spec.ID
}

// Do executes the table step.
func (s *TableSectionStep) Do(_ context.Context, report *model.Report) error {
	records := report.Data.Records(s.spec.Key)
	if s.spec.UnfilledRecords(records) {
		s.logger.Debug("section has no data, skipping", "section", s.spec.ID, "key", s.spec.Key)
		report.MarkSkipped(s.spec.ID)
		return nil
	}

	content := render.TableBody(render.TableRows(records, s.spec.Columns))
	changed, err := replaceRegion(s.logger, report, s.spec.ID, document.BlockTableBody, content)
	if err != nil {
		return err
	}
	if !changed {
		report.MarkSkipped(s.spec.ID)
		return nil
	}

	s.logger.Debug("filled table", "section", s.spec.ID, "rows", len(records), "content", content)
	report.MarkPopulated(s.spec.ID)
	return nil
}

// SummaryStep sets the text of a section's summary callout.
// It only runs for sections that were populated in this run.
type SummaryStep struct {
	// sectionID is the section whose callout is replaced.
	sectionID string

	// logger for structured logging.
	logger *slog.Logger
}

// NewSummaryStep creates a summary step for the given section.
func NewSummaryStep(sectionID string, logger *slog.Logger) *SummaryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryStep{sectionID: sectionID, logger: logger}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary_" + s.sectionID
}

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, report *model.Report) error {
	text := report.Data.Summary(s.sectionID)
	if text == "" || !report.IsPopulated(s.sectionID) {
		return nil
	}

	changed, err := replaceRegion(s.logger, report, s.sectionID, document.BlockCallout, render.CalloutContent(text))
	if err != nil {
		return err
	}
	if changed {
		s.logger.Debug("replaced summary", "section", s.sectionID, "summary", text)
	}
	return nil
}

// SynthesisStep fills the ordered list of a list section.
type SynthesisStep struct {
	// spec describes the section's key and placeholder.
	spec model.SectionSpec

	// style selects how points without a title are rendered.
	style render.SynthesisStyle

	// logger for structured logging.
	logger *slog.Logger
}

// NewSynthesisStep creates a step for the given list section.
func NewSynthesisStep(spec model.SectionSpec, style render.SynthesisStyle, logger *slog.Logger) *SynthesisStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SynthesisStep{spec: spec, style: style, logger: logger}
}

// Name returns the step name.
func (s *SynthesisStep) Name() string {
	return "list_" + s.spec.ID
}

// Do executes the synthesis step.
func (s *SynthesisStep) Do(_ context.Context, report *model.Report) error {
	points := report.Data.Points(s.spec.Key)
	if s.spec.UnfilledPoints(points) {
		s.logger.Debug("section has no data, skipping", "section", s.spec.ID, "key", s.spec.Key)
		report.MarkSkipped(s.spec.ID)
		return nil
	}

	content := render.ListBody(render.ListItems(points, s.style))
	changed, err := replaceRegion(s.logger, report, s.spec.ID, document.BlockOrderedList, content)
	if err != nil {
		return err
	}
	if !changed {
		report.MarkSkipped(s.spec.ID)
		return nil
	}

	s.logger.Debug("filled list", "section", s.spec.ID, "points", len(points), "style", string(s.style))
	report.MarkPopulated(s.spec.ID)
	return nil
}

// NoticeBoxStep removes the instructional notice box once real data was
// written to at least one section.
type NoticeBoxStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewNoticeBoxStep creates a notice box removal step.
func NewNoticeBoxStep(logger *slog.Logger) *NoticeBoxStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoticeBoxStep{logger: logger}
}

// Name returns the step name.
func (s *NoticeBoxStep) Name() string {
	return "remove_notice_box"
}

// Do executes the notice box step.
func (s *NoticeBoxStep) Do(_ context.Context, report *model.Report) error {
	if !report.HasPopulated() {
		s.logger.Debug("no section populated, keeping notice box")
		return nil
	}

	out, removed, err := document.RemoveNoticeBox(report.HTML)
	if err != nil {
		return fmt.Errorf("failed to remove notice box: %w", err)
	}
	report.HTML = out
	report.NoticeRemoved = removed
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Sections is the section layout, in template order.
	Sections []model.SectionSpec

	// SynthesisStyle selects how synthesis points without a title are rendered.
	SynthesisStyle render.SynthesisStyle

	// MetaPrefix is the literal text that precedes the report date.
	MetaPrefix string

	// Now returns the current time, used when the data carries no date.
	Now func() time.Time
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineSections sets the section layout.
func WithPipelineSections(sections []model.SectionSpec) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Sections = sections
	}
}

// WithPipelineSynthesisStyle sets the synthesis fallback style.
func WithPipelineSynthesisStyle(style render.SynthesisStyle) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SynthesisStyle = style
	}
}

// WithPipelineMetaPrefix sets the text that precedes the report date.
func WithPipelineMetaPrefix(prefix string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MetaPrefix = prefix
	}
}

// WithPipelineClock sets the clock used for the default report date.
func WithPipelineClock(now func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Now = now
	}
}

// DefaultPipeline creates a pipeline with all generation steps configured.
//
// Steps run in this order: header date, each section in layout order (the
// projects table is followed by its summary), then notice box removal, which
// depends on the sections populated before it.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineSections, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Sections:       model.DefaultSections(),
		SynthesisStyle: render.SynthesisPlain,
		MetaPrefix:     DefaultMetaPrefix,
		Now:            time.Now,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddStep(NewDateStep(
		WithDatePrefix(cfg.MetaPrefix),
		WithDateClock(cfg.Now),
		WithDateLogger(p.logger),
	))

	for _, spec := range cfg.Sections {
		switch spec.Kind {
		case model.SectionKindTable:
			p.AddStep(NewTableSectionStep(spec, p.logger))
			if spec.ID == model.SectionProjects {
				p.AddStep(NewSummaryStep(spec.ID, p.logger))
			}
		case model.SectionKindList:
			p.AddStep(NewSynthesisStep(spec, cfg.SynthesisStyle, p.logger))
		}
	}

	p.AddStep(NewNoticeBoxStep(p.logger))

	return p
}

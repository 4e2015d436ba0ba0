package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/pipeline"
	"github.com/nao1215/weeklyreport/internal/render"
	"github.com/nao1215/weeklyreport/internal/report"
)

// Paths names the files of one generation run.
type Paths struct {
	// Template is the HTML template to fill.
	Template string

	// Data is the JSON data file.
	Data string

	// Output is where the finished document is written.
	Output string
}

// Generator fills a report template with the week's data.
//
// Design decision: Generator holds only configuration. Every call to Generate
// builds a fresh pipeline and report, so one Generator can serve any number
// of runs.
type Generator struct {
	logger     *slog.Logger
	sections   []model.SectionSpec
	style      render.SynthesisStyle
	metaPrefix string
	encoding   string
	now        func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger passed to the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSections sets the section layout.
func WithSections(sections []model.SectionSpec) Option {
	return func(g *Generator) {
		if len(sections) > 0 {
			g.sections = sections
		}
	}
}

// WithSynthesisStyle sets how synthesis points without a title are rendered.
func WithSynthesisStyle(style render.SynthesisStyle) Option {
	return func(g *Generator) {
		g.style = style
	}
}

// WithMetaPrefix sets the text that precedes the report date.
func WithMetaPrefix(prefix string) Option {
	return func(g *Generator) {
		if prefix != "" {
			g.metaPrefix = prefix
		}
	}
}

// WithEncoding sets the charset of the template and the output.
func WithEncoding(name string) Option {
	return func(g *Generator) {
		g.encoding = name
	}
}

// WithClock sets the clock used when the data carries no report date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger:     slog.Default(),
		sections:   model.DefaultSections(),
		style:      render.SynthesisPlain,
		metaPrefix: pipeline.DefaultMetaPrefix,
		encoding:   document.DefaultEncoding,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadData reads and decodes the JSON data file.
// A missing file wraps os.ErrNotExist; malformed JSON wraps *json.SyntaxError
// or *json.UnmarshalTypeError.
func LoadData(path string) (*model.ReportData, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data model.ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", path, err)
	}
	return &data, nil
}

// LoadTemplate reads the template and converts it to UTF-8.
func (g *Generator) LoadTemplate(path string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	html, err := document.Decode(raw, g.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", path, err)
	}
	return html, nil
}

// Pipeline returns the pipeline used for every run.
func (g *Generator) Pipeline() *pipeline.Pipeline {
	return pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(g.logger)},
		pipeline.WithPipelineSections(g.sections),
		pipeline.WithPipelineSynthesisStyle(g.style),
		pipeline.WithPipelineMetaPrefix(g.metaPrefix),
		pipeline.WithPipelineClock(g.now),
	)
}

// Fill runs the pipeline over an in-memory template.
// The returned report carries the finished document in HTML.
func (g *Generator) Fill(ctx context.Context, data *model.ReportData, html []byte) (*model.Report, error) {
	rep := model.NewReport(data, html)
	rep.GeneratedAt = g.now()
	return rep, g.Pipeline().Execute(ctx, rep)
}

// Generate reads the data and the template, fills the template and writes
// the output file. The output is only written when every step succeeded.
func (g *Generator) Generate(ctx context.Context, paths Paths) (*model.Report, error) {
	data, err := LoadData(paths.Data)
	if err != nil {
		return nil, err
	}

	html, err := g.LoadTemplate(paths.Template)
	if err != nil {
		return nil, err
	}

	rep := model.NewReport(data, html)
	rep.TemplatePath = paths.Template
	rep.DataPath = paths.Data
	rep.OutputPath = paths.Output
	rep.GeneratedAt = g.now()

	if err := g.Pipeline().Execute(ctx, rep); err != nil {
		return rep, fmt.Errorf("failed to fill template: %w", err)
	}

	if err := g.write(rep); err != nil {
		return rep, err
	}

	g.logger.Debug("report generated",
		"output", rep.OutputPath,
		"populated", rep.Populated,
		"skipped", rep.Skipped,
	)
	return rep, nil
}

// Encode returns the finished document in the configured charset.
func (g *Generator) Encode(rep *model.Report) ([]byte, error) {
	return report.NewHTMLWriter(nil, report.WithEncoding(g.encoding)).Encode(rep)
}

// write stores the finished document at rep.OutputPath.
func (g *Generator) write(rep *model.Report) error {
	dir := filepath.Dir(rep.OutputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(rep.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // the report is served to a browser
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewHTMLWriter(f, report.WithEncoding(g.encoding)).Write(rep); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}

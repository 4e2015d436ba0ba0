package updater

import (
	"errors"
	"log/slog"

	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/render"
)

// Updater edits individual regions of a report document.
type Updater struct {
	// logger receives warnings about missing regions.
	logger *slog.Logger

	// style selects how synthesis points without a title are rendered.
	style render.SynthesisStyle

	// sections supplies default column orders for table updates.
	sections []model.SectionSpec
}

// Option is a function that configures an Updater.
type Option func(*Updater)

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) {
		u.logger = logger
	}
}

// WithSynthesisStyle sets the fallback style for synthesis points.
// The default is render.SynthesisNumbered.
func WithSynthesisStyle(style render.SynthesisStyle) Option {
	return func(u *Updater) {
		u.style = style
	}
}

// WithSections sets the section layout used to resolve column orders.
func WithSections(sections []model.SectionSpec) Option {
	return func(u *Updater) {
		u.sections = sections
	}
}

// New creates an Updater with the given options.
func New(opts ...Option) *Updater {
	u := &Updater{
		style: render.SynthesisNumbered,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	if u.sections == nil {
		u.sections = model.DefaultSections()
	}
	return u
}

// UpdateSectionTable replaces the rows of the section's table body.
//
// Cells follow columns when given. Otherwise the section's configured column
// order is used, and for unknown sections the sorted keys of the first row.
func (u *Updater) UpdateSectionTable(html, sectionID string, rows []model.Record, columns ...string) string {
	cols := u.columnsFor(sectionID, rows, columns)
	content := render.CompactTableBody(render.CompactRows(rows, cols))

	out, err := document.ReplaceInner([]byte(html), sectionID, document.BlockTableBody, content)
	if err != nil {
		u.warn(sectionID, document.BlockTableBody, err)
		return html
	}
	u.logger.Debug("updated table", "section", sectionID, "rows", len(rows))
	return string(out)
}

// UpdateSummary sets the section's summary callout to text.
// An existing callout is replaced as a whole. If the section has none, a new
// callout is inserted right after the section's first table.
func (u *Updater) UpdateSummary(html, sectionID, text string) string {
	callout := render.Callout(text)

	out, err := document.ReplaceOuter([]byte(html), sectionID, document.BlockCallout, callout)
	if err == nil {
		u.logger.Debug("replaced summary", "section", sectionID, "summary", text)
		return string(out)
	}
	if !errors.Is(err, document.ErrBlockNotFound) {
		u.warn(sectionID, document.BlockCallout, err)
		return html
	}

	out, err = document.InsertAfterTable([]byte(html), sectionID, "\n  "+callout)
	if err != nil {
		u.warn(sectionID, document.BlockCallout, err)
		return html
	}
	u.logger.Debug("inserted summary", "section", sectionID, "summary", text)
	return string(out)
}

// UpdateSynthesis replaces the ordered list of the synthesis section.
func (u *Updater) UpdateSynthesis(html string, points []string) string {
	content := render.ListBody(render.ListItems(points, u.style))

	out, err := document.ReplaceInner([]byte(html), model.SectionSynthesis, document.BlockOrderedList, content)
	if err != nil {
		u.warn(model.SectionSynthesis, document.BlockOrderedList, err)
		return html
	}
	u.logger.Debug("updated synthesis", "points", len(points), "style", string(u.style))
	return string(out)
}

// UpdateWatchlist replaces the rows of the watchlist table. Each item's focus
// is rendered in bold.
func (u *Updater) UpdateWatchlist(html string, items []model.Record) string {
	content := render.TableBody(render.WatchlistRows(items))

	out, err := document.ReplaceInner([]byte(html), model.SectionWatchlist, document.BlockTableBody, content)
	if err != nil {
		u.warn(model.SectionWatchlist, document.BlockTableBody, err)
		return html
	}
	u.logger.Debug("updated watchlist", "items", len(items))
	return string(out)
}

// SectionColumns returns the configured column order of a section, or nil
// for a section with no known columns.
func (u *Updater) SectionColumns(sectionID string) []string {
	if spec, ok := model.LookupSection(u.sections, sectionID); ok && len(spec.Columns) > 0 {
		return spec.Columns
	}
	return nil
}

func (u *Updater) columnsFor(sectionID string, rows []model.Record, columns []string) []string {
	if len(columns) > 0 {
		return columns
	}
	if cols := u.SectionColumns(sectionID); cols != nil {
		return cols
	}
	if len(rows) > 0 {
		return rows[0].Columns()
	}
	return nil
}

func (u *Updater) warn(sectionID string, kind document.BlockKind, err error) {
	u.logger.Warn("document left unchanged",
		"section", sectionID,
		"block", kind.String(),
		"error", err,
	)
}

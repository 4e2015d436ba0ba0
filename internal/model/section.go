package model

import "strings"

// SectionKind describes which sub-block of a section is populated.
type SectionKind int

const (
	// SectionKindTable sections are filled by replacing their <tbody> rows.
	SectionKindTable SectionKind = iota
	// SectionKindList sections are filled by replacing their <ol> items.
	SectionKindList
)

// String returns the human-readable kind name.
func (k SectionKind) String() string {
	switch k {
	case SectionKindTable:
		return "table"
	case SectionKindList:
		return "list"
	default:
		return "unknown"
	}
}

// Section identifiers used by the report template.
const (
	SectionProjects      = "sec1"
	SectionIndustry      = "sec2"
	SectionManufacturers = "sec3"
	SectionRental        = "sec4"
	SectionSynthesis     = "sec5"
	SectionWatchlist     = "sec6"
)

// SectionSpec describes one named region of the report template and how the
// input data maps onto it.
type SectionSpec struct {
	// ID is the value of the section's id attribute (e.g. "sec1").
	ID string

	// Key is the top-level JSON key holding this section's data.
	Key string

	// Title is the section heading, used by the Markdown digest.
	Title string

	// Kind selects table or list substitution.
	Kind SectionKind

	// Columns is the ordered list of record columns rendered as cells.
	// Unused for list sections.
	Columns []string

	// SentinelColumn is the column of the first record compared against Sentinel.
	// Unused for list sections, which compare the first point by prefix.
	SentinelColumn string

	// Sentinel is the instructional placeholder text left in the template's
	// sample data. A section whose first entry still carries it is unfilled.
	Sentinel string
}

// DefaultSections returns the section layout of the weekly construction report.
// A fresh slice is returned on every call so callers may override columns.
func DefaultSections() []SectionSpec {
	return []SectionSpec{
		{
			ID:             SectionProjects,
			Key:            "section1_projects",
			Title:          "工程项目",
			Kind:           SectionKindTable,
			Columns:        []string{"date", "region", "details", "impact"},
			SentinelColumn: "date",
			Sentinel:       "日期（如：12月1日）",
		},
		{
			ID:             SectionIndustry,
			Key:            "section2_industry",
			Title:          "行业动态",
			Kind:           SectionKindTable,
			Columns:        []string{"date", "topic", "content", "significance"},
			SentinelColumn: "date",
			Sentinel:       "日期",
		},
		{
			ID:             SectionManufacturers,
			Key:            "section3_manufacturers",
			Title:          "制造企业",
			Kind:           SectionKindTable,
			Columns:        []string{"date", "company", "event", "analysis"},
			SentinelColumn: "date",
			Sentinel:       "日期",
		},
		{
			ID:             SectionRental,
			Key:            "section4_rental",
			Title:          "租赁企业",
			Kind:           SectionKindTable,
			Columns:        []string{"date", "company", "event", "notes"},
			SentinelColumn: "date",
			Sentinel:       "日期",
		},
		{
			ID:       SectionSynthesis,
			Key:      "section5_synthesis",
			Title:    "综合观察",
			Kind:     SectionKindList,
			Sentinel: "综合观察要点",
		},
		{
			ID:             SectionWatchlist,
			Key:            "section6_watchlist",
			Title:          "下周前瞻",
			Kind:           SectionKindTable,
			Columns:        []string{"focus", "timing", "impact"},
			SentinelColumn: "focus",
			Sentinel:       "关注事项（加粗格式：<strong>事项</strong>）",
		},
	}
}

// LookupSection returns the spec with the given id from specs.
func LookupSection(specs []SectionSpec, id string) (SectionSpec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return SectionSpec{}, false
}

// UnfilledRecords reports whether records should be treated as placeholder data.
// Empty input, or a first record whose sentinel column equals the sentinel text,
// leaves the section untouched.
func (s SectionSpec) UnfilledRecords(records []Record) bool {
	if len(records) == 0 {
		return true
	}
	if s.SentinelColumn == "" || s.Sentinel == "" {
		return false
	}
	return records[0].Get(s.SentinelColumn) == s.Sentinel
}

// UnfilledPoints is the list-section counterpart of UnfilledRecords: the first
// point starting with the sentinel text marks the section as unfilled.
func (s SectionSpec) UnfilledPoints(points []string) bool {
	if len(points) == 0 {
		return true
	}
	if s.Sentinel == "" {
		return false
	}
	return strings.HasPrefix(points[0], s.Sentinel)
}

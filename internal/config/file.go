package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/nao1215/weeklyreport/internal/model"
)

// Defaults holds the file-level settings that replace built-in defaults.
type Defaults struct {
	// Template is the HTML template path.
	Template string `yaml:"template,omitempty"`

	// Data is the JSON data file path.
	Data string `yaml:"data,omitempty"`

	// Output is the generated report path.
	Output string `yaml:"output,omitempty"`

	// Encoding is the charset of the template and output (utf-8, gb18030, gbk).
	Encoding string `yaml:"encoding,omitempty"`

	// MetaPrefix is the literal text that precedes the report date.
	MetaPrefix string `yaml:"meta_prefix,omitempty"`

	// SynthesisFallback is plain or numbered.
	SynthesisFallback string `yaml:"synthesis_fallback,omitempty"`

	// Port is the preview server port.
	Port int `yaml:"port,omitempty"`

	// OpenFile is the file opened in the browser by serve.
	OpenFile string `yaml:"open_file,omitempty"`
}

// SectionConfig holds overrides for a single report section.
// This allows a team to adapt the column layout when the template changes.
type SectionConfig struct {
	// Columns replaces the section's column order.
	Columns []string `yaml:"columns,omitempty"`

	// Sentinel replaces the placeholder value that marks the section unfilled.
	Sentinel string `yaml:"sentinel,omitempty"`

	// Title replaces the section title used in digests.
	Title string `yaml:"title,omitempty"`
}

// File represents the structure of the .weeklyreport configuration file.
type File struct {
	// Defaults contains settings applied to every run.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Sections maps section ids (sec1..sec6) to their overrides.
	Sections map[string]SectionConfig `yaml:"sections,omitempty"`
}

// NewFile returns an empty configuration file.
func NewFile() *File {
	return &File{Sections: make(map[string]SectionConfig)}
}

// GetSectionConfig returns the overrides for a section.
// Unknown ids return an empty SectionConfig.
func (cf *File) GetSectionConfig(sectionID string) SectionConfig {
	if cf == nil {
		return SectionConfig{}
	}
	return cf.Sections[sectionID]
}

// ApplySections merges the file's section overrides into specs and returns
// the result. specs is modified in place.
func (cf *File) ApplySections(specs []model.SectionSpec) []model.SectionSpec {
	for i := range specs {
		sc := cf.GetSectionConfig(specs[i].ID)
		if len(sc.Columns) > 0 {
			specs[i].Columns = slices.Clone(sc.Columns)
		}
		if sc.Sentinel != "" {
			specs[i].Sentinel = sc.Sentinel
		}
		if sc.Title != "" {
			specs[i].Title = sc.Title
		}
	}
	return specs
}

// Validate reports overrides for sections that do not exist and column
// overrides on list sections.
func (cf *File) Validate() error {
	ids := make([]string, 0, len(cf.Sections))
	for id := range cf.Sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	defaults := model.DefaultSections()
	for _, id := range ids {
		spec, ok := model.LookupSection(defaults, id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidSection, id)
		}
		if spec.Kind == model.SectionKindList && len(cf.Sections[id].Columns) > 0 {
			return fmt.Errorf("%w: %s is a list and has no columns", ErrInvalidSection, id)
		}
	}
	return nil
}

package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/weeklyreport/internal/document"
	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/pipeline"
	"github.com/nao1215/weeklyreport/internal/render"
)

// Default configuration values.
// The file names match the report package the research team distributes:
// a dated template, a JSON data skeleton and the finished report.
const (
	// DefaultTemplatePath is the HTML template filled by the generator.
	DefaultTemplatePath = "建筑业周报_2025-12-02.html"

	// DefaultDataPath is the JSON data file read by the generator.
	DefaultDataPath = "新闻数据模板.json"

	// DefaultOutputPath is where the generated report is written.
	DefaultOutputPath = "建筑业周报_2025-12-02_完整版.html"

	// DefaultPort is the preview server port.
	DefaultPort = 8000

	// DefaultOpenFile is the file opened in the browser when the server starts.
	DefaultOpenFile = "高空作业平台租金跟踪.html"

	// DefaultRoot is the directory served by the preview server.
	DefaultRoot = "."

	// AppName is the application name used for XDG directory paths.
	AppName = "weeklyreport"
)

// Config holds all configuration options for weeklyreport.
// This struct is populated from the configuration file and CLI flags and
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., GenerateConfig, ServeConfig) for simplicity. Each subcommand reads
// only the fields it needs.
type Config struct {
	// TemplatePath is the HTML template containing the sections to fill.
	TemplatePath string

	// DataPath is the JSON data file.
	DataPath string

	// OutputPath is where the generated report is written.
	OutputPath string

	// Encoding is the charset of the template and the output file.
	// UTF-8 is passed through untouched; other charsets are converted.
	Encoding string

	// MetaPrefix is the literal text that precedes the report date.
	MetaPrefix string

	// SynthesisFallback overrides how synthesis points without a title are
	// rendered. Empty means each component keeps its own default.
	SynthesisFallback string

	// Port is the preview server port.
	Port int

	// Root is the directory served by the preview server.
	Root string

	// OpenFile is the file opened in the browser after the server starts.
	OpenFile string

	// NoBrowser disables opening the browser.
	NoBrowser bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .weeklyreport in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds the settings loaded from the configuration file.
	File *File

	// SaveHistory records each generation run in the history database.
	SaveHistory bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/weeklyreport on Linux).
	DBDir string

	// MarkdownFile is an optional path for a Markdown digest of the input data.
	MarkdownFile string

	// SummaryJSON prints the run summary as JSON instead of text.
	SummaryJSON bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (file names, port).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		TemplatePath: DefaultTemplatePath,
		DataPath:     DefaultDataPath,
		OutputPath:   DefaultOutputPath,
		Encoding:     document.DefaultEncoding,
		MetaPrefix:   pipeline.DefaultMetaPrefix,
		Port:         DefaultPort,
		Root:         DefaultRoot,
		OpenFile:     DefaultOpenFile,
		DBDir:        XDGDataDir(),
		File:         NewFile(),
	}
}

// XDGDataDir returns the XDG data directory for weeklyreport.
// On Linux: ~/.local/share/weeklyreport
// On macOS: ~/Library/Application Support/weeklyreport
// On Windows: %LOCALAPPDATA%\weeklyreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ApplyFile copies the non-empty defaults of a configuration file into the
// config. Flags applied afterwards take precedence.
func (c *Config) ApplyFile(cf *File) {
	if cf == nil {
		return
	}
	c.File = cf

	d := cf.Defaults
	if d.Template != "" {
		c.TemplatePath = d.Template
	}
	if d.Data != "" {
		c.DataPath = d.Data
	}
	if d.Output != "" {
		c.OutputPath = d.Output
	}
	if d.Encoding != "" {
		c.Encoding = d.Encoding
	}
	if d.MetaPrefix != "" {
		c.MetaPrefix = d.MetaPrefix
	}
	if d.SynthesisFallback != "" {
		c.SynthesisFallback = d.SynthesisFallback
	}
	if d.Port != 0 {
		c.Port = d.Port
	}
	if d.OpenFile != "" {
		c.OpenFile = d.OpenFile
	}
}

// Sections returns the section layout with the file's overrides applied.
func (c *Config) Sections() []model.SectionSpec {
	if c.File == nil {
		return model.DefaultSections()
	}
	return c.File.ApplySections(model.DefaultSections())
}

// GeneratorSynthesisStyle returns the synthesis style used by generate.
func (c *Config) GeneratorSynthesisStyle() render.SynthesisStyle {
	return c.synthesisStyle(render.SynthesisPlain)
}

// UpdaterSynthesisStyle returns the synthesis style used by update.
func (c *Config) UpdaterSynthesisStyle() render.SynthesisStyle {
	return c.synthesisStyle(render.SynthesisNumbered)
}

func (c *Config) synthesisStyle(fallback render.SynthesisStyle) render.SynthesisStyle {
	if c.SynthesisFallback == "" {
		return fallback
	}
	style, err := render.ParseSynthesisStyle(c.SynthesisFallback)
	if err != nil {
		return fallback
	}
	return style
}

// Validate checks if the generator configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We return the first error found because fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if c.TemplatePath == "" {
		return ErrEmptyTemplate
	}
	if c.DataPath == "" {
		return ErrEmptyDataPath
	}
	if c.OutputPath == "" {
		return ErrEmptyOutput
	}
	if filepath.Clean(c.OutputPath) == filepath.Clean(c.TemplatePath) {
		return ErrOutputIsTemplate
	}
	if !document.IsUTF8(c.Encoding) {
		if _, err := document.LookupEncoding(c.Encoding); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownEncoding, c.Encoding)
		}
	}
	if c.SynthesisFallback != "" {
		if _, err := render.ParseSynthesisStyle(c.SynthesisFallback); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidSynthesisStyle, c.SynthesisFallback)
		}
	}
	if c.File != nil {
		if err := c.File.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateServer checks the settings used by the preview server.
func (c *Config) ValidateServer() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

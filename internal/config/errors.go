package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptyTemplate is returned when no HTML template path is configured.
	ErrEmptyTemplate = errors.New("no template specified: use --template or set defaults.template")

	// ErrEmptyDataPath is returned when no JSON data path is configured.
	ErrEmptyDataPath = errors.New("no data file specified")

	// ErrEmptyOutput is returned when no output path is configured.
	ErrEmptyOutput = errors.New("no output file specified")

	// ErrOutputIsTemplate is returned when the output path equals the template path.
	// Generating in place would destroy the placeholder rows the next run relies on.
	ErrOutputIsTemplate = errors.New("output file must differ from the template")

	// ErrInvalidPort is returned when the server port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrUnknownEncoding is returned when the configured charset is not supported.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrInvalidSynthesisStyle is returned when synthesis_fallback is neither
	// plain nor numbered.
	ErrInvalidSynthesisStyle = errors.New("invalid synthesis fallback: must be plain or numbered")

	// ErrInvalidSection is returned when the config file overrides an unknown section.
	ErrInvalidSection = errors.New("unknown section in configuration file")
)

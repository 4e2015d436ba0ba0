package document

import "errors"

var (
	// ErrSectionNotFound is returned when no <section> carries the requested id.
	ErrSectionNotFound = errors.New("section not found")

	// ErrBlockNotFound is returned when a section exists but lacks the requested sub-block.
	ErrBlockNotFound = errors.New("block not found in section")

	// ErrDuplicateSection is returned when two sections share the same id.
	// Only one instance of each section id is supported per document.
	ErrDuplicateSection = errors.New("duplicate section id")

	// ErrUnknownEncoding is returned for character encodings that cannot be resolved.
	ErrUnknownEncoding = errors.New("unknown character encoding")
)

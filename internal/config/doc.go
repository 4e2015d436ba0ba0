// Package config provides configuration structures and utilities for weeklyreport.
// It defines the file locations used by the generator, the section layout
// overrides read from the .weeklyreport file, and the preview server settings.
package config

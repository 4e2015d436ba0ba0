// Package main provides the entry point for the weeklyreport CLI.
//
// weeklyreport fills the weekly construction-industry report template with
// the week's news data and serves the result for preview.
//
// Usage:
//
//	weeklyreport generate [json_path] [output_path]
//	weeklyreport update table --section sec2 --rows rows.json
//	weeklyreport serve
//
// See --help for all available options.
package main

// main is the entry point for weeklyreport.
func main() {
	Execute()
}

// Package model defines the core data structures used throughout weeklyreport.
//
// This package contains the following main types:
//   - ReportData: The decoded JSON input (report metadata plus per-section data)
//   - Record: One table row, a mapping from column name to cell value
//   - SectionSpec: The fixed description of a template section (id, columns, sentinel)
//   - Report: A single generation run, carrying the document and its outcome
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The pipeline, updater, report and database packages all need
// these types, so centralizing them prevents import cycles.
package model

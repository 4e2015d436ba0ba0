// Package render turns report data into the HTML fragments that are spliced
// into the template: table rows, synthesis list items and summary callouts.
//
// Values are inserted verbatim. The input format allows pre-formatted inline
// HTML (bold and emphasis spans) inside field values, so nothing is escaped.
package render

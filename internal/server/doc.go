// Package server serves a directory over HTTP for previewing generated reports.
//
// Every response carries headers that disable browser caching, so a report
// regenerated while the server runs is picked up by a plain reload. Directory
// listings, MIME types and 404s come from http.FileServer unchanged.
//
// The server binds before it prints anything, so a port that is already
// taken is reported as ErrPortInUse instead of a half-started banner.
package server

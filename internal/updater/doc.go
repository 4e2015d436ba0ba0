// Package updater provides discrete update functions for an in-memory weekly
// report document.
//
// Unlike the generator, which fills every section from one JSON file in a
// single run, the updater edits one region at a time. It is meant for
// scripted editing, where a caller fetches news for one topic and rewrites
// just that table, list or summary.
//
// Every function takes the document as a string and returns the edited
// document. Missing sections or blocks are logged as warnings and the input
// is returned unchanged.
package updater

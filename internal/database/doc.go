// Package database provides SQLite-based storage for weeklyreport.
//
// This package implements the HistoryDB, which records every generation run:
// the template and data it used, the sections it filled and a SHA3-256
// digest of the written document. The history command lists these runs, and
// the generator uses the latest digest to tell whether a rerun changed the
// output.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
package database

package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/weeklyreport/internal/model"
)

// FileName is the name of the history database file.
const FileName = "weeklyreport.db"

// HistoryDB provides SQLite-based storage for generation runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// ErrDatabaseNotFound is returned by Open when the database file does not
// exist and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("database not found")

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create a file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per generation run
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_date TEXT NOT NULL,
		template TEXT NOT NULL,
		data TEXT NOT NULL,
		output TEXT NOT NULL,
		digest TEXT NOT NULL,
		populated TEXT,
		skipped TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_output ON generations(output);
	CREATE INDEX IF NOT EXISTS idx_generations_timestamp ON generations(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Digest returns the hex encoded SHA3-256 digest of a written document.
func Digest(content []byte) string {
	sum := sha3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Generation is a stored generation run.
type Generation struct {
	// ID is the database ID.
	ID int64 `json:"id"`

	// Timestamp is when the run was recorded.
	Timestamp time.Time `json:"timestamp"`

	// ReportDate is the date written into the document header.
	ReportDate string `json:"report_date"`

	// TemplatePath is the template the run read.
	TemplatePath string `json:"template"`

	// DataPath is the JSON data file the run read.
	DataPath string `json:"data"`

	// OutputPath is the file the run wrote.
	OutputPath string `json:"output"`

	// Digest is the SHA3-256 digest of the written document.
	Digest string `json:"digest"`

	// Populated lists the sections filled with real data.
	Populated []string `json:"populated"`

	// Skipped lists the sections left unchanged.
	Skipped []string `json:"skipped"`
}

// SaveGeneration records a finished run. content is the document exactly as
// written to disk and is only used to compute the digest.
func (hdb *HistoryDB) SaveGeneration(ctx context.Context, report *model.Report, content []byte) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}
	populated, _ := json.Marshal(report.Populated) //nolint:errcheck,errchkjson // string slice; Marshal won't fail
	skipped, _ := json.Marshal(report.Skipped)     //nolint:errcheck,errchkjson // string slice; Marshal won't fail

	query := `
	INSERT INTO generations (report_date, template, data, output, digest, populated, skipped, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.ReportDate,
		report.TemplatePath,
		report.DataPath,
		report.OutputPath,
		Digest(content),
		string(populated),
		string(skipped),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save generation: %w", err)
	}

	return result.LastInsertId()
}

// generationColumns is the column list shared by the generation queries.
const generationColumns = `id, timestamp, report_date, template, data, output, digest, populated, skipped`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*Generation, error) {
	var g Generation
	var timestamp string
	var populated, skipped sql.NullString

	if err := row.Scan(
		&g.ID,
		&timestamp,
		&g.ReportDate,
		&g.TemplatePath,
		&g.DataPath,
		&g.OutputPath,
		&g.Digest,
		&populated,
		&skipped,
	); err != nil {
		return nil, err
	}

	g.Timestamp = parseTimestamp(timestamp)
	g.Populated = parseIDs(populated)
	g.Skipped = parseIDs(skipped)
	return &g, nil
}

// parseIDs decodes a JSON list of section ids. Invalid values yield an empty list.
func parseIDs(s sql.NullString) []string {
	ids := make([]string, 0)
	if !s.Valid || s.String == "" {
		return ids
	}
	if err := json.Unmarshal([]byte(s.String), &ids); err != nil {
		return make([]string, 0)
	}
	return ids
}

// ListGenerations returns the most recent runs, newest first.
// A non-positive limit returns every run.
func (hdb *HistoryDB) ListGenerations(ctx context.Context, limit int) ([]Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations ORDER BY timestamp DESC, id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var results []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		results = append(results, *g)
	}

	return results, rows.Err()
}

// GetGenerationByID retrieves a run by its database ID.
// It returns nil without error if the run does not exist.
func (hdb *HistoryDB) GetGenerationByID(ctx context.Context, id int64) (*Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations WHERE id = ?`

	g, err := scanGeneration(hdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

// LatestForOutput returns the most recent run that wrote the given output path.
// It returns nil without error if the output was never generated.
func (hdb *HistoryDB) LatestForOutput(ctx context.Context, output string) (*Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations WHERE output = ? ORDER BY timestamp DESC, id DESC LIMIT 1`

	g, err := scanGeneration(hdb.db.QueryRowContext(ctx, query, output))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest generation: %w", err)
	}
	return g, nil
}

// GetReportByID retrieves the full run summary stored with a generation.
func (hdb *HistoryDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, `SELECT report_json FROM generations WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package baseline

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"unsafemeter/internal/logging"
	"unsafemeter/internal/stats"
)

// ErrRunNotFound is returned when a requested run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Store keeps a local history of analysis runs so a diff can use any
// previous run as its baseline without shipping CSV files around.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	path   string
}

// RunInfo describes one stored run.
type RunInfo struct {
	ID        string
	Crate     string
	CreatedAt time.Time
	FileCount int
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	crate TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS file_stats (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	filename TEXT NOT NULL,
	static_mut_items INTEGER NOT NULL,
	total_fns INTEGER NOT NULL,
	total_lines INTEGER NOT NULL,
	total_statements INTEGER NOT NULL,
	unsafe_fns INTEGER NOT NULL,
	unsafe_statements INTEGER NOT NULL,
	unwraps INTEGER NOT NULL,
	PRIMARY KEY (run_id, filename)
);
`

// OpenStore opens or creates the history database under dir.
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	dbPath := filepath.Join(dir, "history.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{conn: conn, logger: logger, path: dbPath}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveRun stores a report as a new run and returns the run id.
func (s *Store) SaveRun(crate string, report *stats.Report) (string, error) {
	id := uuid.NewString()

	tx, err := s.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		"INSERT INTO runs (id, crate, created_at) VALUES (?, ?, ?)",
		id, crate, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, name := range report.SortedFiles() {
		cs := report.Files[name]
		_, err = tx.Exec(`
			INSERT INTO file_stats (
				run_id, filename, static_mut_items, total_fns, total_lines,
				total_statements, unsafe_fns, unsafe_statements, unwraps
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, name, cs.StaticMutItems, cs.TotalFns, cs.TotalLines,
			cs.TotalStatements, cs.UnsafeFns, cs.UnsafeStatements, cs.Unwraps)
		if err != nil {
			return "", fmt.Errorf("inserting file stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}

	s.logger.Info("saved baseline run", map[string]interface{}{
		"run":   id,
		"crate": crate,
		"files": len(report.Files),
	})
	return id, nil
}

// ListRuns returns all stored runs, newest first.
func (s *Store) ListRuns() ([]RunInfo, error) {
	rows, err := s.conn.Query(`
		SELECT r.id, r.crate, r.created_at, COUNT(f.filename)
		FROM runs r
		LEFT JOIN file_stats f ON f.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt int64
		if err := rows.Scan(&info.ID, &info.Crate, &createdAt, &info.FileCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		info.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// LatestRunID returns the id of the most recent run.
func (s *Store) LatestRunID() (string, error) {
	var id string
	err := s.conn.QueryRow(
		"SELECT id FROM runs ORDER BY created_at DESC LIMIT 1",
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrRunNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying latest run: %w", err)
	}
	return id, nil
}

// LoadRun rebuilds the report of a stored run.
func (s *Store) LoadRun(id string) (*stats.Report, error) {
	var exists int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	rows, err := s.conn.Query(`
		SELECT filename, static_mut_items, total_fns, total_lines,
			   total_statements, unsafe_fns, unsafe_statements, unwraps
		FROM file_stats WHERE run_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying file stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	perFile := make(map[string]stats.CodeStats)
	for rows.Next() {
		var name string
		var cs stats.CodeStats
		err := rows.Scan(&name, &cs.StaticMutItems, &cs.TotalFns, &cs.TotalLines,
			&cs.TotalStatements, &cs.UnsafeFns, &cs.UnsafeStatements, &cs.Unwraps)
		if err != nil {
			return nil, fmt.Errorf("scanning file stats: %w", err)
		}
		perFile[name] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats.NewReport(perFile), nil
}

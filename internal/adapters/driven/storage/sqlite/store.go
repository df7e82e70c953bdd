package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/chapter-bundler/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.BundleStore = (*Store)(nil)
	_ driven.RunRecorder = (*Store)(nil)
)

// Store is a SQLite-backed bundle store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path and applies pending migrations.
// The parent directory is created if absent.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Name returns "sqlite".
func (s *Store) Name() string {
	return "sqlite"
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// SaveDataset replaces all chapters and verses with the dataset.
func (s *Store) SaveDataset(ctx context.Context, dataset *domain.Dataset) ([]string, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM verses"); err != nil {
			return fmt.Errorf("clearing verses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM chapters"); err != nil {
			return fmt.Errorf("clearing chapters: %w", err)
		}

		chapterStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO chapters (number, surah_no, name, name_arabic, name_arabic_long,
				name_translation, revelation_place, total_ayah, verbatim)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing chapter insert: %w", err)
		}
		defer chapterStmt.Close()

		verseStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO verses (chapter_number, position, number, arabic, english, bengali, verbatim)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing verse insert: %w", err)
		}
		defer verseStmt.Close()

		for _, number := range dataset.Numbers() {
			ch, _ := dataset.Get(number)
			verbatim, err := verbatimJSON(ch.Verbatim)
			if err != nil {
				return fmt.Errorf("encoding chapter %d: %w", number, err)
			}
			if _, err := chapterStmt.ExecContext(ctx,
				number, ch.Number, ch.Name, ch.NameArabic, ch.NameArabicLong,
				ch.NameTranslation, ch.RevelationPlace, ch.TotalAyah, verbatim,
			); err != nil {
				return fmt.Errorf("inserting chapter %d: %w", number, err)
			}
			for i, v := range ch.Ayahs {
				verbatim, err := verbatimJSON(v.Verbatim)
				if err != nil {
					return fmt.Errorf("encoding chapter %d verse %d: %w", number, i+1, err)
				}
				if _, err := verseStmt.ExecContext(ctx,
					number, i+1, v.Number, v.Arabic, v.English, v.Bengali, verbatim,
				); err != nil {
					return fmt.Errorf("inserting chapter %d verse %d: %w", number, i+1, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []string{s.path}, nil
}

// SaveIndex replaces all index entries. Each row also keeps the entry's JSON
// exactly as it is written to the index file.
func (s *Store) SaveIndex(ctx context.Context, entries []domain.IndexEntry) ([]string, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM index_entries"); err != nil {
			return fmt.Errorf("clearing index entries: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO index_entries (position, number, name, name_arabic, name_arabic_long,
				name_translation, total_ayah, revelation_place, entry)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing index insert: %w", err)
		}
		defer stmt.Close()

		for i, e := range entries {
			data, err := encodeEntry(e)
			if err != nil {
				return fmt.Errorf("encoding index entry %d: %w", e.Number, err)
			}
			if _, err := stmt.ExecContext(ctx,
				i+1, e.Number, e.Name, e.NameArabic, e.NameArabicLong,
				e.NameTranslation, e.TotalAyah, e.RevelationPlace, string(data),
			); err != nil {
				return fmt.Errorf("inserting index entry %d: %w", e.Number, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []string{s.path}, nil
}

// RecordRun stores the run summary and its skipped files.
func (s *Store) RecordRun(ctx context.Context, report *domain.RunReport) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var indexErr sql.NullString
		if report.IndexErr != nil {
			indexErr = sql.NullString{String: report.IndexErr.Error(), Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO bundle_runs (id, started_at, finished_at, files_found, chapters,
				index_entries, index_from_file, index_error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			report.RunID,
			report.StartedAt.UTC().Format(time.RFC3339Nano),
			report.FinishedAt.UTC().Format(time.RFC3339Nano),
			report.FilesFound,
			report.Chapters,
			report.IndexEntries,
			boolToInt(report.IndexFromFile),
			indexErr,
		)
		if err != nil {
			return fmt.Errorf("inserting run %s: %w", report.RunID, err)
		}

		for i, fe := range report.FileErrors {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO run_file_errors (run_id, position, file, error)
				VALUES (?, ?, ?, ?)
			`, report.RunID, i+1, fe.File, errorText(fe.Err))
			if err != nil {
				return fmt.Errorf("inserting file error for %s: %w", fe.File, err)
			}
		}
		return nil
	})
}

// Run is a recorded bundle run.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	FilesFound    int
	Chapters      int
	IndexEntries  int
	IndexFromFile bool
	IndexError    string
	FileErrors    []domain.FileError
}

// GetRun returns a recorded run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var (
		run               Run
		started, finished string
		fromFile          int
		indexErr          sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, files_found, chapters, index_entries,
			index_from_file, index_error
		FROM bundle_runs WHERE id = ?
	`, id).Scan(&run.ID, &started, &finished, &run.FilesFound, &run.Chapters,
		&run.IndexEntries, &fromFile, &indexErr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", id, err)
	}

	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	run.IndexFromFile = fromFile != 0
	run.IndexError = indexErr.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT file, error FROM run_file_errors WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying file errors for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var file, msg string
		if err := rows.Scan(&file, &msg); err != nil {
			return nil, fmt.Errorf("scanning file error: %w", err)
		}
		run.FileErrors = append(run.FileErrors, domain.FileError{File: file, Err: errors.New(msg)})
	}
	return &run, rows.Err()
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// encodeEntry encodes an index entry the way the JSON outputs do, without
// HTML escaping.
func encodeEntry(e domain.IndexEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// verbatimJSON encodes source values kept as found, or NULL when there are none.
func verbatimJSON(verbatim map[string]json.RawMessage) (sql.NullString, error) {
	if len(verbatim) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(verbatim)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

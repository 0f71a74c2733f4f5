package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"ReviewMiner/internal/domain"
	"ReviewMiner/internal/ports"
)

// SQLiteRepository records pipeline runs in a local SQLite database for
// audit and history. It never influences the artifact-existence decision,
// which stays file-based.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.RunRepository = (*SQLiteRepository)(nil)

const createRunsTable = `CREATE TABLE IF NOT EXISTS pipeline_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	input_name TEXT NOT NULL,
	artifact_name TEXT NOT NULL,
	processed_at TEXT NOT NULL,
	rows_in INTEGER NOT NULL,
	rows_kept INTEGER NOT NULL,
	dropped_dates INTEGER NOT NULL,
	row_failures INTEGER NOT NULL,
	artifact_kept INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Open connects to (creating if necessary) the audit database at path.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db %s: %w", path, err)
	}
	if _, err := db.Exec(createRunsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveRun appends one run record.
func (r *SQLiteRepository) SaveRun(ctx context.Context, report domain.RunReport) error {
	if r.db == nil {
		return nil
	}

	query, args, err := sq.Insert("pipeline_runs").
		Columns("input_name", "artifact_name", "processed_at",
			"rows_in", "rows_kept", "dropped_dates", "row_failures", "artifact_kept").
		Values(report.InputName, report.ArtifactName, report.ProcessedAt.Format("2006-01-02"),
			report.RowsIn, report.RowsKept, report.DroppedDates, report.RowFailures, report.ArtifactKept).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RunsFor returns every recorded run for an input name, oldest first.
func (r *SQLiteRepository) RunsFor(ctx context.Context, inputName string) ([]domain.RunReport, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := sq.Select("input_name", "artifact_name", "processed_at",
		"rows_in", "rows_kept", "dropped_dates", "row_failures", "artifact_kept").
		From("pipeline_runs").
		Where(sq.Eq{"input_name": inputName}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.RunReport
	for rows.Next() {
		var (
			report    domain.RunReport
			processed string
		)
		if err := rows.Scan(&report.InputName, &report.ArtifactName, &processed,
			&report.RowsIn, &report.RowsKept, &report.DroppedDates,
			&report.RowFailures, &report.ArtifactKept); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse("2006-01-02", processed); err == nil {
			report.ProcessedAt = t
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return reports, nil
}

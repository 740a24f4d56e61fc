package db

import (
	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
)

// RecordRun writes one import_log row for a finished (or cancelled) run.
func (db *DB) RecordRun(report *models.Report, plan *models.Plan, errMsg string) error {
	newCount, updateCount, skipCount := plan.Counts()
	_, _, failed := report.Counts()

	status := "success"
	switch {
	case errMsg != "":
		status = "failed"
	case report.Cancelled:
		status = "cancelled"
	case failed > 0:
		status = "partial"
	}

	_, err := db.conn.Exec(`
		INSERT INTO import_log (
			run_id, archive_path, provider, started_at, finished_at,
			new_count, updated_count, skipped_count, failed_count,
			status, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID,
		report.ArchivePath,
		report.Provider,
		report.StartedAt,
		report.FinishedAt,
		newCount,
		updateCount,
		skipCount,
		failed,
		status,
		errMsg,
	)
	return err
}

// CountMaterializations returns how many conversations have ever been written.
func (db *DB) CountMaterializations() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM materializations`).Scan(&count)
	return count, err
}

// CountIgnores returns the size of the global exclusion set.
func (db *DB) CountIgnores() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM global_ignores`).Scan(&count)
	return count, err
}

// CountRuns returns how many import runs have been logged.
func (db *DB) CountRuns() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM import_log`).Scan(&count)
	return count, err
}

// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/playbymail/nixdiff/internal/results"
)

// CreateRun records the start of a conformance run.
func (s *Store) CreateRun(id, basePath, homePath string) error {
	if id == "" {
		return ErrInvalidRunId
	}
	startedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(s.ctx,
		"INSERT INTO runs (id, started_at, base_path, home_path) VALUES (?, ?, ?, ?)",
		id, startedAt, basePath, homePath)
	return err
}

// FinishRun stamps the run's completion time.
func (s *Store) FinishRun(id string) error {
	if id == "" {
		return ErrInvalidRunId
	}
	finishedAt := time.Now().UTC().Format(time.RFC3339)
	rslt, err := s.db.ExecContext(s.ctx,
		"UPDATE runs SET finished_at = ? WHERE id = ?", finishedAt, id)
	if err != nil {
		return err
	}
	if n, err := rslt.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordResult records the outcome for one input file of a run.
func (s *Store) RecordResult(runId, path, hash string, outcome results.Outcome_e, detail string) error {
	if runId == "" {
		return ErrInvalidRunId
	} else if path == "" {
		return ErrInvalidPath
	} else if _, ok := results.EnumToString[outcome]; !ok {
		return ErrInvalidOutcome
	}
	_, err := s.db.ExecContext(s.ctx,
		"INSERT INTO results (run_id, path, hash, outcome, detail) VALUES (?, ?, ?, ?, ?)",
		runId, path, hash, outcome.String(), detail)
	if err != nil {
		// ugh. this is so fragile. we have to inspect the error string to figure out which constraint failed.
		if strings.HasPrefix(err.Error(), "constraint failed: UNIQUE constraint failed: results.run_id, results.path (") {
			return ErrDuplicateResult
		}
		return err
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns() ([]*Run_t, error) {
	rows, err := s.db.QueryContext(s.ctx,
		"SELECT id, started_at, finished_at, base_path, home_path FROM runs ORDER BY started_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Run_t
	for rows.Next() {
		run := &Run_t{}
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.BasePath, &run.HomePath); err != nil {
			return nil, err
		}
		list = append(list, run)
	}
	return list, rows.Err()
}

// ListResults returns the per-file outcomes of a run, sorted by path.
func (s *Store) ListResults(runId string) ([]*Result_t, error) {
	if runId == "" {
		return nil, ErrInvalidRunId
	}
	rows, err := s.db.QueryContext(s.ctx,
		"SELECT run_id, path, hash, outcome, detail FROM results WHERE run_id = ? ORDER BY path", runId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Result_t
	for rows.Next() {
		rslt := &Result_t{}
		var outcome string
		if err := rows.Scan(&rslt.RunID, &rslt.Path, &rslt.Hash, &outcome, &rslt.Detail); err != nil {
			return nil, err
		}
		rslt.Outcome = results.StringToEnum[outcome]
		list = append(list, rslt)
	}
	return list, rows.Err()
}

// SummarizeRun returns the count of results per outcome for a run.
func (s *Store) SummarizeRun(runId string) (map[results.Outcome_e]int, error) {
	if runId == "" {
		return nil, ErrInvalidRunId
	}
	rows, err := s.db.QueryContext(s.ctx,
		"SELECT outcome, COUNT(*) FROM results WHERE run_id = ? GROUP BY outcome", runId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := map[results.Outcome_e]int{}
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		summary[results.StringToEnum[outcome]] = count
	}
	return summary, rows.Err()
}

// GetRun returns a single run by id.
func (s *Store) GetRun(id string) (*Run_t, error) {
	if id == "" {
		return nil, ErrInvalidRunId
	}
	run := &Run_t{}
	err := s.db.QueryRowContext(s.ctx,
		"SELECT id, started_at, finished_at, base_path, home_path FROM runs WHERE id = ?", id).
		Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.BasePath, &run.HomePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return run, nil
}

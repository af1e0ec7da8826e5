// Package store persists trimmed simulation summaries in a local SQLite
// database. The full per-path distribution is never written: only the
// aggregate statistics and percentile bands survive a run.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finplan/finance-planner/internal/simulation"
	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS simulation_runs (
    run_id               TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    iterations           INTEGER NOT NULL,
    years_in_retirement  INTEGER NOT NULL,
    equities_pct         REAL NOT NULL,
    bonds_pct            REAL NOT NULL,
    cash_pct             REAL NOT NULL,
    starting_balance     REAL NOT NULL,
    first_year_withdrawal REAL NOT NULL,
    inflation_rate_pct   REAL NOT NULL,
    success_rate_pct     REAL NOT NULL,
    median_final_balance REAL NOT NULL,
    worst_case           REAL NOT NULL,
    best_case            REAL NOT NULL,
    percentile_bands     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON simulation_runs(created_at);
`

// Store provides SQLite-backed persistence for simulation summaries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the summary database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening summary db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoredRun is one persisted simulation summary.
type StoredRun struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	Params    simulation.Parameters
	Summary   simulation.Results
}

// SaveSummary persists a run's parameters and trimmed results. The
// results are summarized first so the raw final-balance distribution can
// never reach disk regardless of what the caller passes.
func (s *Store) SaveSummary(runID uuid.UUID, params simulation.Parameters, results *simulation.Results) error {
	summary := results.Summary()
	bands, err := gojson.Marshal(summary.PercentileBands)
	if err != nil {
		return fmt.Errorf("encoding percentile bands: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO simulation_runs (
			run_id, created_at, iterations, years_in_retirement,
			equities_pct, bonds_pct, cash_pct,
			starting_balance, first_year_withdrawal, inflation_rate_pct,
			success_rate_pct, median_final_balance, worst_case, best_case,
			percentile_bands
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(),
		time.Now().UTC().Format(time.RFC3339),
		params.Iterations,
		params.YearsInRetirement,
		params.Allocation.EquitiesPct,
		params.Allocation.BondsPct,
		params.Allocation.CashPct,
		params.StartingBalance,
		params.FirstYearWithdrawal,
		params.InflationRatePct,
		summary.SuccessRatePct,
		summary.MedianFinalBalance,
		summary.WorstCase,
		summary.BestCase,
		string(bands),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", runID, err)
	}
	return nil
}

// ListRuns returns the most recent stored summaries, newest first.
func (s *Store) ListRuns(limit int) ([]StoredRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, created_at, iterations, years_in_retirement,
		       equities_pct, bonds_pct, cash_pct,
		       starting_balance, first_year_withdrawal, inflation_rate_pct,
		       success_rate_pct, median_final_balance, worst_case, best_case,
		       percentile_bands
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []StoredRun
	for rows.Next() {
		var (
			run       StoredRun
			id        string
			createdAt string
			bands     string
		)
		if err := rows.Scan(
			&id, &createdAt,
			&run.Params.Iterations, &run.Params.YearsInRetirement,
			&run.Params.Allocation.EquitiesPct, &run.Params.Allocation.BondsPct, &run.Params.Allocation.CashPct,
			&run.Params.StartingBalance, &run.Params.FirstYearWithdrawal, &run.Params.InflationRatePct,
			&run.Summary.SuccessRatePct, &run.Summary.MedianFinalBalance,
			&run.Summary.WorstCase, &run.Summary.BestCase,
			&bands,
		); err != nil {
			return nil, err
		}

		run.RunID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("corrupt run id %q: %w", id, err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q: %w", createdAt, err)
		}
		if err := gojson.Unmarshal([]byte(bands), &run.Summary.PercentileBands); err != nil {
			return nil, fmt.Errorf("corrupt percentile bands for run %s: %w", id, err)
		}
		run.Summary.Iterations = run.Params.Iterations
		run.Summary.YearsInRetirement = run.Params.YearsInRetirement

		runs = append(runs, run)
	}
	return runs, rows.Err()
}

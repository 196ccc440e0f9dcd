// Package store provides a SQLite-backed archive of simulation runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"retirecast/internal/model"
	"retirecast/internal/sim"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	filing_status TEXT NOT NULL,
	start_age INTEGER NOT NULL,
	horizon_years INTEGER NOT NULL,
	strategy TEXT NOT NULL,
	conversions_enabled INTEGER NOT NULL,
	lifetime_tax REAL NOT NULL,
	total_conversions REAL NOT NULL,
	ending_net_worth REAL NOT NULL,
	insufficient_funds INTEGER NOT NULL,
	first_shortfall_age INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_years (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	year_idx INTEGER NOT NULL,
	age INTEGER NOT NULL,
	stage TEXT NOT NULL,
	spending REAL NOT NULL,
	social_security REAL NOT NULL,
	taxable_ss REAL NOT NULL,
	rmd REAL NOT NULL,
	withdraw_taxable REAL NOT NULL,
	withdraw_deferred REAL NOT NULL,
	withdraw_roth REAL NOT NULL,
	conversion REAL NOT NULL,
	realized_gains REAL NOT NULL,
	ordinary_tax REAL NOT NULL,
	cap_gains_tax REAL NOT NULL,
	state_tax REAL NOT NULL,
	total_tax REAL NOT NULL,
	bal_taxable REAL NOT NULL,
	bal_deferred REAL NOT NULL,
	bal_roth REAL NOT NULL,
	basis_remaining REAL NOT NULL,
	shortfall REAL NOT NULL,
	converged INTEGER NOT NULL,
	PRIMARY KEY (run_id, year_idx)
);
`

// RunMeta identifies a saved run in listings.
type RunMeta struct {
	ID                int64
	Name              string
	FilingStatus      string
	StartAge          int
	HorizonYears      int
	Strategy          string
	ConversionsOn     bool
	LifetimeTax       float64
	TotalConversions  float64
	EndingNetWorth    float64
	InsufficientFunds bool
	FirstShortfallAge int
	CreatedAt         time.Time
}

// Store provides SQLite-backed persistence of runs and their ledgers.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run summary plus its full ledger and returns the new id.
func (s *Store) SaveRun(meta RunMeta, res *sim.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	out, err := tx.Exec(`INSERT INTO runs
		(name, filing_status, start_age, horizon_years, strategy, conversions_enabled,
		 lifetime_tax, total_conversions, ending_net_worth,
		 insufficient_funds, first_shortfall_age, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Name, meta.FilingStatus, meta.StartAge, meta.HorizonYears,
		meta.Strategy, boolToInt(meta.ConversionsOn),
		res.LifetimeTax, res.TotalConversions, res.EndingNetWorth,
		boolToInt(res.InsufficientFunds), res.FirstShortfallAge, now,
	)
	if err != nil {
		return 0, err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range res.Rows {
		_, err = tx.Exec(`INSERT INTO run_years
			(run_id, year_idx, age, stage, spending, social_security, taxable_ss,
			 rmd, withdraw_taxable, withdraw_deferred, withdraw_roth, conversion,
			 realized_gains, ordinary_tax, cap_gains_tax, state_tax, total_tax,
			 bal_taxable, bal_deferred, bal_roth, basis_remaining, shortfall, converged)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, r.YearIdx, r.Age, string(r.Stage), r.Spending, r.SocialSecurity, r.TaxableSS,
			r.RMD, r.WithdrawTaxable, r.WithdrawDeferred, r.WithdrawRoth, r.Conversion,
			r.RealizedGains, r.OrdinaryTax, r.CapGainsTax, r.StateTax, r.TotalTax,
			r.EndBalances.Taxable, r.EndBalances.Deferred, r.EndBalances.Roth,
			r.BasisRemaining, r.Shortfall, boolToInt(r.Converged),
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetRun reads one run's metadata.
func (s *Store) GetRun(id int64) (RunMeta, error) {
	row := s.db.QueryRow(`SELECT
		id, name, filing_status, start_age, horizon_years, strategy, conversions_enabled,
		lifetime_tax, total_conversions, ending_net_worth,
		insufficient_funds, first_shortfall_age, created_at
		FROM runs WHERE id = ?`, id)
	return scanRunMeta(row)
}

// GetYears reads a saved ledger back as YearRows, ordered by year.
// Start-of-year balances are not persisted; rows reload with end balances
// and net worth only.
func (s *Store) GetYears(id int64) ([]sim.YearRow, error) {
	rows, err := s.db.Query(`SELECT
		year_idx, age, stage, spending, social_security, taxable_ss,
		rmd, withdraw_taxable, withdraw_deferred, withdraw_roth, conversion,
		realized_gains, ordinary_tax, cap_gains_tax, state_tax, total_tax,
		bal_taxable, bal_deferred, bal_roth, basis_remaining, shortfall, converged
		FROM run_years WHERE run_id = ? ORDER BY year_idx`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []sim.YearRow
	for rows.Next() {
		var r sim.YearRow
		var stage string
		var converged int
		err := rows.Scan(
			&r.YearIdx, &r.Age, &stage, &r.Spending, &r.SocialSecurity, &r.TaxableSS,
			&r.RMD, &r.WithdrawTaxable, &r.WithdrawDeferred, &r.WithdrawRoth, &r.Conversion,
			&r.RealizedGains, &r.OrdinaryTax, &r.CapGainsTax, &r.StateTax, &r.TotalTax,
			&r.EndBalances.Taxable, &r.EndBalances.Deferred, &r.EndBalances.Roth,
			&r.BasisRemaining, &r.Shortfall, &converged,
		)
		if err != nil {
			return nil, err
		}
		r.Stage = model.Stage(stage)
		r.Converged = converged != 0
		r.NetWorth = r.EndBalances.Taxable + r.EndBalances.Deferred + r.EndBalances.Roth
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListRuns returns run metadata, newest first.
func (s *Store) ListRuns(limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT
		id, name, filing_status, start_age, horizon_years, strategy, conversions_enabled,
		lifetime_tax, total_conversions, ending_net_worth,
		insufficient_funds, first_shortfall_age, created_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RunMeta
	for rows.Next() {
		m, err := scanRunMeta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its ledger.
func (s *Store) DeleteRun(id int64) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	return err
}

// RunCount returns the number of stored runs.
func (s *Store) RunCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunMeta(row rowScanner) (RunMeta, error) {
	var m RunMeta
	var conversionsOn, insufficient int
	var created string
	err := row.Scan(
		&m.ID, &m.Name, &m.FilingStatus, &m.StartAge, &m.HorizonYears,
		&m.Strategy, &conversionsOn,
		&m.LifetimeTax, &m.TotalConversions, &m.EndingNetWorth,
		&insufficient, &m.FirstShortfallAge, &created,
	)
	if err != nil {
		return RunMeta{}, err
	}
	m.ConversionsOn = conversionsOn != 0
	m.InsufficientFunds = insufficient != 0
	m.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

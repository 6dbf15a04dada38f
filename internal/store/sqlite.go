package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"cyclet/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "index.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a TUI and a scripted command overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cycles (
			start_date TEXT PRIMARY KEY,
			end_date TEXT NOT NULL,
			duration_days INTEGER NOT NULL,
			spacing_days INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			date TEXT PRIMARY KEY,
			symptoms TEXT NOT NULL,
			mood TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			when_unixms INTEGER NOT NULL,
			message TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_when ON reminders(when_unixms);`,
		`CREATE TABLE IF NOT EXISTS history (
			stack TEXT NOT NULL,
			seq INTEGER NOT NULL,
			json TEXT NOT NULL,
			PRIMARY KEY (stack, seq)
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) loadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	hasState, err := sqliteHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		// One-time import of the legacy CSV files, if present.
		if legacy, ok := s.readLegacyCSV(); ok {
			if err := s.saveSQLite(ctx, legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

func (s Store) saveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "version", "1"); err != nil {
		return err
	}

	// Replace-all inside one transaction: simple, and atomic from the
	// caller's perspective.
	for _, t := range []string{"cycles", "daily_logs", "reminders", "history"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, c := range st.Cycles {
		if _, err := tx.ExecContext(ctx, `INSERT INTO cycles(start_date, end_date, duration_days, spacing_days, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			c.StartDate, c.EndDate, c.DurationDays, c.SpacingDays, nowMs); err != nil {
			return err
		}
	}
	for _, lg := range st.Logs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO daily_logs(date, symptoms, mood, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			lg.Date, lg.Symptoms, lg.Mood, nowMs); err != nil {
			return err
		}
	}
	for _, r := range st.Reminders {
		if r.Derived {
			// Derived entries are rebuilt from ledger state on load.
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO reminders(when_unixms, message) VALUES(?, ?)`,
			r.When.UTC().UnixMilli(), r.Message); err != nil {
			return err
		}
	}
	if err := insertStack(ctx, tx, "undo", st.Undo); err != nil {
		return err
	}
	if err := insertStack(ctx, tx, "redo", st.Redo); err != nil {
		return err
	}

	return tx.Commit()
}

func insertStack(ctx context.Context, tx *sql.Tx, stack string, actions []model.HistoryAction) error {
	for i, a := range actions {
		raw, err := json.Marshal(a)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO history(stack, seq, json) VALUES(?, ?, ?)`,
			stack, i, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func sqliteHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	qs := []string{
		`SELECT COUNT(1) FROM cycles`,
		`SELECT COUNT(1) FROM daily_logs`,
		`SELECT COUNT(1) FROM reminders`,
		`SELECT COUNT(1) FROM history`,
	}
	for _, q := range qs {
		var n int
		if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1}

	rows, err := db.QueryContext(ctx, `SELECT start_date, end_date, duration_days, spacing_days FROM cycles`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c model.Cycle
		if err := rows.Scan(&c.StartDate, &c.EndDate, &c.DurationDays, &c.SpacingDays); err != nil {
			rows.Close()
			return nil, err
		}
		out.Cycles = append(out.Cycles, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT date, symptoms, mood FROM daily_logs`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var lg model.DailyLog
		if err := rows.Scan(&lg.Date, &lg.Symptoms, &lg.Mood); err != nil {
			rows.Close()
			return nil, err
		}
		out.Logs = append(out.Logs, lg)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT when_unixms, message FROM reminders ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ms int64
		var r model.Reminder
		if err := rows.Scan(&ms, &r.Message); err != nil {
			rows.Close()
			return nil, err
		}
		r.When = time.UnixMilli(ms).UTC()
		out.Reminders = append(out.Reminders, r)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	if out.Undo, err = loadStack(ctx, db, "undo"); err != nil {
		return nil, err
	}
	if out.Redo, err = loadStack(ctx, db, "redo"); err != nil {
		return nil, err
	}

	return out, nil
}

func loadStack(ctx context.Context, db *sql.DB, stack string) ([]model.HistoryAction, error) {
	rows, err := db.QueryContext(ctx, `SELECT json FROM history WHERE stack = ? ORDER BY seq`, stack)
	if err != nil {
		return nil, err
	}
	var out []model.HistoryAction
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			rows.Close()
			return nil, err
		}
		var a model.HistoryAction
		if err := json.Unmarshal([]byte(js), &a); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, a)
	}
	return out, closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// readLegacyCSV loads the original flat-file format if either file exists.
func (s Store) readLegacyCSV() (*DB, bool) {
	cycles, cyclesErr := ReadCyclesCSV(s.cyclesCSVPath())
	logs, logsErr := ReadLogsCSV(s.logsCSVPath())
	if cyclesErr != nil && logsErr != nil {
		return nil, false
	}
	if len(cycles) == 0 && len(logs) == 0 {
		return nil, false
	}
	return &DB{Version: 1, Cycles: cycles, Logs: logs}, true
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cyclet/internal/model"
)

const (
	cyclesCSVName = "cycles.csv"
	logsCSVName   = "daily_logs.csv"
)

// DB is the whole persisted state: the cycle ledger, the daily key-value log
// store, manual reminders, and the undo/redo stacks. The derived prediction
// reminder is never persisted; it is rebuilt from ledger state on load.
type DB struct {
	Version   int                   `json:"version"`
	Cycles    []model.Cycle         `json:"cycles"`
	Logs      []model.DailyLog      `json:"logs"`
	Reminders []model.Reminder      `json:"reminders"`
	Undo      []model.HistoryAction `json:"undo"`
	Redo      []model.HistoryAction `json:"redo"`
}

type Store struct {
	Dir string
}

// DefaultDir resolves the store directory: $CYCLET_DIR, else ~/.cyclet.
func DefaultDir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("CYCLET_DIR")); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cyclet"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) cyclesCSVPath() string { return filepath.Join(s.Dir, cyclesCSVName) }
func (s Store) logsCSVPath() string   { return filepath.Join(s.Dir, logsCSVName) }

// Load reads the store. SQLite is the only source of truth; if its state is
// empty and legacy CSV files exist, they are imported once first.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.loadSQLite(context.Background())
}

// Save persists the whole state in a single transaction: a failed save leaves
// the previous on-disk state intact.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(context.Background(), db)
}

func (db *DB) FindLog(date string) (*model.DailyLog, bool) {
	for i := range db.Logs {
		if db.Logs[i].Date == date {
			return &db.Logs[i], true
		}
	}
	return nil, false
}

// LogDay records symptoms and mood for a date. An existing entry accumulates:
// new symptoms are appended "; "-joined, a non-empty mood replaces the old one.
func (db *DB) LogDay(date, symptoms, mood string) model.DailyLog {
	if entry, ok := db.FindLog(date); ok {
		if symptoms != "" {
			if entry.Symptoms != "" {
				entry.Symptoms += "; "
			}
			entry.Symptoms += symptoms
		}
		if mood != "" {
			entry.Mood = mood
		}
		return *entry
	}
	entry := model.DailyLog{Date: date, Symptoms: symptoms, Mood: mood}
	db.Logs = append(db.Logs, entry)
	return entry
}

// LogsByDate returns the daily logs sorted ascending by date.
func (db *DB) LogsByDate() []model.DailyLog {
	out := make([]model.DailyLog, len(db.Logs))
	copy(out, db.Logs)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

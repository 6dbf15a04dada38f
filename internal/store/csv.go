package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cyclet/internal/model"
)

// Legacy CSV wire format, kept byte-compatible with the original flat files:
//
//	cycles.csv:     startDate,endDate,durationDays,spacingDays
//	daily_logs.csv: date,symptoms,mood
//
// Rows are split on bare commas (the original never quoted fields); free-text
// fields have commas replaced by semicolons on write, which is lossy and
// documented as such. Malformed rows are skipped on read, not fatal.

// ReadCyclesCSV parses a legacy cycles file. A missing file is an error;
// malformed rows inside an existing file are silently skipped.
func ReadCyclesCSV(path string) ([]model.Cycle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.Cycle
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := splitTrim(line)
		if len(parts) < 4 {
			continue
		}
		duration, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		spacing, err := strconv.Atoi(parts[3])
		if err != nil {
			continue
		}
		out = append(out, model.Cycle{
			StartDate:    parts[0],
			EndDate:      parts[1],
			DurationDays: duration,
			SpacingDays:  spacing,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadLogsCSV parses a legacy daily-logs file.
func ReadLogsCSV(path string) ([]model.DailyLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.DailyLog
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := splitTrim(line)
		if len(parts) < 3 {
			continue
		}
		out = append(out, model.DailyLog{Date: parts[0], Symptoms: parts[1], Mood: parts[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteCyclesCSV writes the legacy cycles file atomically (temp file + rename).
func WriteCyclesCSV(path string, cycles []model.Cycle) error {
	var b strings.Builder
	for _, c := range cycles {
		fmt.Fprintf(&b, "%s,%s,%d,%d\n", c.StartDate, c.EndDate, c.DurationDays, c.SpacingDays)
	}
	return writeFileAtomic(path, []byte(b.String()))
}

// WriteLogsCSV writes the legacy daily-logs file. Commas inside free text are
// replaced by semicolons so the row stays splittable; the originals are not
// recoverable on reload.
func WriteLogsCSV(path string, logs []model.DailyLog) error {
	var b strings.Builder
	for _, lg := range logs {
		fmt.Fprintf(&b, "%s,%s,%s\n", lg.Date, escapeField(lg.Symptoms), escapeField(lg.Mood))
	}
	return writeFileAtomic(path, []byte(b.String()))
}

func escapeField(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cyclet-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// ExportCSV writes both legacy files into dir.
func (s Store) ExportCSV(dir string, db *DB) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := WriteCyclesCSV(filepath.Join(dir, cyclesCSVName), db.Cycles); err != nil {
		return err
	}
	return WriteLogsCSV(filepath.Join(dir, logsCSVName), db.LogsByDate())
}

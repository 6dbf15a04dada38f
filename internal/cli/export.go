package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cyclet/internal/dateutil"
	"cyclet/internal/ledger"
	"cyclet/internal/predict"
	"cyclet/internal/store"
	"cyclet/internal/tracker"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the store to other formats",
	}
	cmd.AddCommand(newExportCSVCmd(app))
	cmd.AddCommand(newExportICSCmd(app))
	return cmd
}

func newExportCSVCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write cycles.csv and daily_logs.csv (legacy flat-file format)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if to == "" {
				to = s.Dir
			}
			if err := s.ExportCSV(to, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":    to,
					"cycles": len(db.Cycles),
					"logs":   len(db.Logs),
				},
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Target directory (default: the store dir)")
	return cmd
}

func newExportICSCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write an iCalendar file with cycles, the prediction, and reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			body, events, err := buildICS(t, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": out, "events": events},
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "cyclet.ics", "Output .ics path")
	return cmd
}

// buildICS renders the whole store as all-day calendar events: one per
// recorded cycle, one for the predicted next start, one per upcoming manual
// reminder. DTEND is exclusive per RFC 5545, hence the extra day.
func buildICS(t *tracker.Tracker, now time.Time) (string, int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cyclet//cycle ledger//EN")

	events := 0
	for _, c := range t.Ledger.Chronological() {
		start, err := dateutil.ParseDate(c.StartDate)
		if err != nil {
			return "", 0, err
		}
		end, err := dateutil.ParseDate(c.EndDate)
		if err != nil {
			return "", 0, err
		}
		ev := cal.AddEvent(fmt.Sprintf("cycle-%s@cyclet", c.StartDate))
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("Cycle (%d days)", c.DurationDays+1))
		events++
	}

	if next, ok := predict.NextStart(t.Ledger); ok {
		when, err := dateutil.ParseDate(next)
		if err == nil {
			ev := cal.AddEvent(fmt.Sprintf("predicted-%s@cyclet", next))
			ev.SetDtStampTime(now)
			ev.SetAllDayStartAt(when)
			ev.SetAllDayEndAt(when.AddDate(0, 0, 1))
			ev.SetSummary("Predicted next cycle")
			events++
		}
	}

	for i, r := range t.Reminders.Manual() {
		if r.When.Before(now) {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("reminder-%d-%s@cyclet", i, r.When.Format("2006-01-02")))
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(r.When)
		ev.SetAllDayEndAt(r.When.AddDate(0, 0, 1))
		ev.SetSummary(r.Message)
		events++
	}

	return cal.Serialize(), events, nil
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data into the store",
	}
	cmd.AddCommand(newImportCSVCmd(app))
	return cmd
}

func newImportCSVCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Merge cycles.csv and daily_logs.csv from a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if from == "" {
				from = s.Dir
			}

			cycles, cyclesErr := store.ReadCyclesCSV(filepath.Join(from, "cycles.csv"))
			logs, logsErr := store.ReadLogsCSV(filepath.Join(from, "daily_logs.csv"))
			if cyclesErr != nil && logsErr != nil {
				return writeErr(cmd, fmt.Errorf("no importable files in %s", from))
			}

			l := ledger.New(db.Cycles)
			imported := 0
			for _, c := range cycles {
				// Stored spacing is recomputed on insert; entries already
				// present (same start date) are skipped.
				if _, err := l.Insert(c.StartDate, c.EndDate); err != nil {
					continue
				}
				imported++
			}
			db.Cycles = l.Records()

			mergedLogs := 0
			for _, lg := range logs {
				db.LogDay(lg.Date, lg.Symptoms, lg.Mood)
				mergedLogs++
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"cyclesImported": imported,
					"logsMerged":     mergedLogs,
				},
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source directory (default: the store dir)")
	return cmd
}

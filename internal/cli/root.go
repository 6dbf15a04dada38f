package cli

import (
	"fmt"
	"os"
	"strings"

	"cyclet/internal/format"
	"cyclet/internal/model"
	"cyclet/internal/store"
	"cyclet/internal/tracker"
	"cyclet/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cyclet",
		Short:        "Cyclet (local-first) cycle tracker CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cyclet

  # Scriptable commands
  cyclet cycles add --start 2024-01-01 --end 2024-01-05
  cyclet cycles list
  cyclet predict
  cyclet remind list

  # Reverse the last ledger change
  cyclet undo
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CYCLET_DIR", ""), "Path to store dir (default: ~/.cyclet)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CYCLET_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newCyclesCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newRedoCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newPredictCmd(app))
	cmd.AddCommand(newRemindCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

// session assembles a tracker from persisted state. applySession writes the
// tracker's state back into the DB before saving.
func session(db *store.DB) *tracker.Tracker {
	return tracker.New(db.Cycles, db.Undo, db.Redo, db.Reminders)
}

func applySession(db *store.DB, t *tracker.Tracker) {
	db.Cycles = t.Ledger.Records()
	db.Undo = t.History.UndoStack()
	db.Redo = t.History.RedoStack()
	db.Reminders = t.Reminders.Manual()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func reminderViews(rs []model.Reminder) []reminderView {
	out := make([]reminderView, 0, len(rs))
	for _, r := range rs {
		out = append(out, reminderView{
			Date:    r.When.Format("2006-01-02"),
			Message: r.Message,
			Derived: r.Derived,
		})
	}
	return out
}

// reminderView is the JSON shape for reminder listings: the instant is
// rendered as a plain date, matching the rest of the output surface.
type reminderView struct {
	Date    string `json:"date"`
	Message string `json:"message"`
	Derived bool   `json:"derived"`
}

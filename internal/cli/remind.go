package cli

import (
	"errors"
	"strings"
	"time"

	"cyclet/internal/dateutil"
	"cyclet/internal/remind"

	"github.com/spf13/cobra"
)

func newRemindCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Upcoming reminders (manual plus the derived prediction)",
	}
	cmd.AddCommand(newRemindListCmd(app))
	cmd.AddCommand(newRemindAddCmd(app))
	return cmd
}

func newRemindListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming reminders in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			out := t.Reminders.Upcoming(time.Now().UTC(), limit)

			// Listing prunes expired entries; persist the pruned queue so the
			// expiry sticks across invocations.
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": reminderViews(out),
				"meta": map[string]any{
					"returned": len(out),
					"limit":    limit,
				},
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", remind.DefaultListLimit, "Max reminders to return (0 = all)")
	return cmd
}

func newRemindAddCmd(app *App) *cobra.Command {
	var date string
	var message string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := dateutil.ParseDate(date)
			if err != nil {
				return writeErr(cmd, err)
			}
			message = strings.TrimSpace(message)
			if message == "" {
				return writeErr(cmd, errors.New("missing --message"))
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t := session(db)
			r := t.Reminders.AddManual(when, message)
			applySession(db, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": reminderView{
				Date:    r.When.Format("2006-01-02"),
				Message: r.Message,
			}})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Reminder date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&message, "message", "", "Reminder message")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

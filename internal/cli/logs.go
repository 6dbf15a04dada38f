package cli

import (
	"errors"
	"strings"

	"cyclet/internal/dateutil"

	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Daily symptom and mood logs",
	}
	cmd.AddCommand(newLogAddCmd(app))
	cmd.AddCommand(newLogListCmd(app))
	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var date string
	var symptoms string
	var mood string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log symptoms and mood for a day (repeated calls accumulate)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := dateutil.ParseDate(date); err != nil {
				return writeErr(cmd, err)
			}
			symptoms = strings.TrimSpace(symptoms)
			mood = strings.TrimSpace(mood)
			if symptoms == "" && mood == "" {
				return writeErr(cmd, errors.New("nothing to log; pass --symptoms and/or --mood"))
			}

			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry := db.LogDay(date, symptoms, mood)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": entry})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&symptoms, "symptoms", "", "Symptoms free text")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood free text")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily logs sorted by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := db.LogsByDate()
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"count": len(out)},
			})
		},
	}
	return cmd
}

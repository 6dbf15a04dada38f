package cli

import (
	"errors"
	"time"

	"cyclet/internal/ledger"
	"cyclet/internal/predict"

	"github.com/spf13/cobra"
)

func newPredictCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the next cycle start from the recorded history",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l := ledger.New(db.Cycles)
			next, ok := predict.NextStart(l)
			if !ok {
				return writeErr(cmd, errors.New("no cycles recorded; add one first"))
			}
			days, err := predict.DaysUntil(next, time.Now().UTC())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"predictedStart":     next,
					"averageSpacingDays": l.AverageSpacing(),
					"daysUntil":          days,
				},
			})
		},
	}
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summary statistics over the recorded cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := ledger.New(db.Cycles).Stats()
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
	return cmd
}
